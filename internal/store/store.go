package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/mixer"
	"github.com/san-kum/quadsim/internal/sim"
)

// Store persists runs as a directory per run: metadata.json plus history.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Metrics   map[string]float64 `json:"metrics"`
}

var historyHeader = []string{
	"time",
	"x", "y", "z",
	"roll", "pitch", "yaw",
	"tx", "ty", "tz",
	"troll", "tpitch", "tyaw",
	"m_fl", "m_fr", "m_rr", "m_rl",
}

func (s *Store) Save(preset string, cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "history.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(historyHeader); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := make([]string, 0, len(historyHeader))
		row = appendFloat(row, result.Times[i])
		row = appendVec(row, result.Positions[i])
		row = appendVec(row, result.Attitudes[i])
		row = appendVec(row, result.TargetPos[i])
		row = appendVec(row, result.TargetAtt[i])
		for _, m := range result.Motors[i] {
			row = appendFloat(row, m)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHistory reads the recorded time series back into a result. Debug
// snapshots and metrics are not round-tripped; metrics live in the metadata.
func (s *Store) LoadHistory(runID string) (*sim.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	res := &sim.Result{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(historyHeader) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i, len(record), len(historyHeader))
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i, field, err)
			}
			vals[j] = v
		}

		res.Times = append(res.Times, vals[0])
		res.Positions = append(res.Positions, cascade.Vector3{X: vals[1], Y: vals[2], Z: vals[3]})
		res.Attitudes = append(res.Attitudes, cascade.Vector3{X: vals[4], Y: vals[5], Z: vals[6]})
		res.TargetPos = append(res.TargetPos, cascade.Vector3{X: vals[7], Y: vals[8], Z: vals[9]})
		res.TargetAtt = append(res.TargetAtt, cascade.Vector3{X: vals[10], Y: vals[11], Z: vals[12]})
		res.Motors = append(res.Motors, mixer.MotorCommand{vals[13], vals[14], vals[15], vals[16]})
	}

	return res, nil
}

func appendFloat(row []string, v float64) []string {
	return append(row, strconv.FormatFloat(v, 'f', 6, 64))
}

func appendVec(row []string, v cascade.Vector3) []string {
	row = appendFloat(row, v.X)
	row = appendFloat(row, v.Y)
	return appendFloat(row, v.Z)
}
