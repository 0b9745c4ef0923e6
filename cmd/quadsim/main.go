package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/quadsim/internal/airframe"
	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/config"
	"github.com/san-kum/quadsim/internal/metrics"
	"github.com/san-kum/quadsim/internal/optim"
	"github.com/san-kum/quadsim/internal/sim"
	"github.com/san-kum/quadsim/internal/store"
	"github.com/san-kum/quadsim/internal/tuner"
	"github.com/san-kum/quadsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	configFile string
	preset     string
	frameRate  int
	workers    int
	kpRange    []float64
	kiRange    []float64
	kdRange    []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadsim",
		Short: "cascaded PID control lab for an X-configuration quadrotor",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quadsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the history",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "fly the loop with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().Float64Var(&duration, "time", 30.0, "duration")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	tuneCmd := &cobra.Command{
		Use:   "tune [scenario]",
		Short: "print suggested starting gains for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tuner.Advise(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search position gains for minimum tracking error",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	sweepCmd.Flags().Float64SliceVar(&kpRange, "kp", []float64{0.5, 1.0, 1.5, 2.0}, "kp candidates")
	sweepCmd.Flags().Float64SliceVar(&kiRange, "ki", []float64{0.05, 0.1, 0.2}, "ki candidates")
	sweepCmd.Flags().Float64SliceVar(&kdRange, "kd", []float64{0.3, 0.5, 0.8}, "kd candidates")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, tuneCmd, presetsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "custom"
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	return cfg, name, nil
}

func buildRunner(cfg *config.Config) *sim.Runner {
	ctrl := cascade.New(cfg.CascadeConfig())
	targetPos, targetAtt := cfg.Targets()
	ctrl.SetTargetPosition(targetPos.X, targetPos.Y, targetPos.Z)
	ctrl.SetTargetAttitude(targetAtt.X, targetAtt.Y, targetAtt.Z)

	runner := sim.New(ctrl, airframe.New())
	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewTrackingError())
	runner.AddMetric(metrics.NewSaturation())
	for _, wp := range cfg.SimWaypoints() {
		runner.AddWaypoint(wp)
	}
	return runner
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := buildRunner(cfg)
	pos, att := cfg.InitState()

	fmt.Printf("running %s scenario...\n", name)
	start := time.Now()

	result, err := runner.Run(context.Background(), pos, att, cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.SimConfig(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Times))

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	fmt.Println()
	return tuner.Report(os.Stdout, result)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.Times))

	viz.PlotResult(os.Stdout, result)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	return store.ExportJSON(os.Stdout, meta, result)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	grid := &optim.GridSearch{Kp: kpRange, Ki: kiRange, Kd: kdRange}
	total := len(grid.Candidates())
	fmt.Printf("sweeping %d candidates on %s scenario (%d workers)...\n", total, name, workers)
	start := time.Now()

	score := func(ctx context.Context, c optim.Candidate) (float64, error) {
		candidate := *cfg
		for _, a := range []*config.AxisConfig{&candidate.Position.X, &candidate.Position.Y, &candidate.Position.Z} {
			a.Kp, a.Ki, a.Kd = c.Kp, c.Ki, c.Kd
		}

		tracking := metrics.NewTrackingError()
		runner := sim.New(cascade.New(candidate.CascadeConfig()), airframe.New())
		runner.AddMetric(tracking)
		targetPos, targetAtt := candidate.Targets()
		runner.Cascade().SetTargetPosition(targetPos.X, targetPos.Y, targetPos.Z)
		runner.Cascade().SetTargetAttitude(targetAtt.X, targetAtt.Y, targetAtt.Z)
		for _, wp := range candidate.SimWaypoints() {
			runner.AddWaypoint(wp)
		}

		pos, att := candidate.InitState()
		result, err := runner.Run(ctx, pos, att, candidate.SimConfig())
		if err != nil {
			return 0, err
		}
		return result.Metrics[tracking.Name()], nil
	}

	best, err := grid.Search(context.Background(), workers, score)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("best position gains: kp=%.3f ki=%.3f kd=%.3f\n",
		best.Candidate.Kp, best.Candidate.Ki, best.Candidate.Kd)
	fmt.Printf("tracking rms: %.6f\n", best.Score)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctrl := cascade.New(cfg.CascadeConfig())
	targetPos, targetAtt := cfg.Targets()
	ctrl.SetTargetPosition(targetPos.X, targetPos.Y, targetPos.Z)
	ctrl.SetTargetAttitude(targetAtt.X, targetAtt.Y, targetAtt.Z)

	pos, att := cfg.InitState()
	return viz.RunLive(ctrl, airframe.New(), pos, att, cfg.Dt, cfg.Duration, frameRate)
}
