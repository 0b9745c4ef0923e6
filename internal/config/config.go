package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/pid"
	"github.com/san-kum/quadsim/internal/sim"
)

const (
	DefaultDt       = 0.02 // 50 Hz
	DefaultDuration = 10.0
)

type AxisConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	IMax   float64 `yaml:"i_max"`
	OutMax float64 `yaml:"out_max"`
}

func (a AxisConfig) Params() pid.Params {
	return pid.Params{Kp: a.Kp, Ki: a.Ki, Kd: a.Kd, IMax: a.IMax, OutMax: a.OutMax}
}

type PositionConfig struct {
	X AxisConfig `yaml:"x"`
	Y AxisConfig `yaml:"y"`
	Z AxisConfig `yaml:"z"`
}

type AttitudeConfig struct {
	Roll  AxisConfig `yaml:"roll"`
	Pitch AxisConfig `yaml:"pitch"`
	Yaw   AxisConfig `yaml:"yaw"`
}

type CouplingConfig struct {
	Gain    float64 `yaml:"gain"`
	MaxTilt float64 `yaml:"max_tilt"`
}

type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type AttConfig struct {
	Roll  float64 `yaml:"roll"`
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

type WaypointConfig struct {
	At       float64    `yaml:"at"`
	Position *VecConfig `yaml:"position,omitempty"`
	Attitude *AttConfig `yaml:"attitude,omitempty"`
}

type Config struct {
	Dt        float64          `yaml:"dt"`
	Duration  float64          `yaml:"duration"`
	Position  PositionConfig   `yaml:"position"`
	Attitude  AttitudeConfig   `yaml:"attitude"`
	Coupling  CouplingConfig   `yaml:"coupling"`
	InitPos   VecConfig        `yaml:"init_position"`
	InitAtt   AttConfig        `yaml:"init_attitude"`
	TargetPos VecConfig        `yaml:"target_position"`
	TargetAtt AttConfig        `yaml:"target_attitude"`
	Waypoints []WaypointConfig `yaml:"waypoints,omitempty"`
}

// DefaultConfig is the stock hover tune: climb to 5m from a small offset.
func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Position: PositionConfig{
			X: AxisConfig{Kp: 1.0, Ki: 0.1, Kd: 0.5, IMax: 10.0, OutMax: 10.0},
			Y: AxisConfig{Kp: 1.0, Ki: 0.1, Kd: 0.5, IMax: 10.0, OutMax: 10.0},
			Z: AxisConfig{Kp: 2.0, Ki: 0.2, Kd: 0.8, IMax: 10.0, OutMax: 15.0},
		},
		Attitude: AttitudeConfig{
			Roll:  AxisConfig{Kp: 2.0, Ki: 0.5, Kd: 0.3, IMax: 10.0, OutMax: 45.0},
			Pitch: AxisConfig{Kp: 2.0, Ki: 0.5, Kd: 0.3, IMax: 10.0, OutMax: 45.0},
			Yaw:   AxisConfig{Kp: 1.5, Ki: 0.3, Kd: 0.2, IMax: 10.0, OutMax: 60.0},
		},
		Coupling:  CouplingConfig{Gain: 0.1, MaxTilt: 30.0},
		InitPos:   VecConfig{X: 0.5, Y: -0.3, Z: 0},
		InitAtt:   AttConfig{Roll: 2.0, Pitch: -1.5, Yaw: 5.0},
		TargetPos: VecConfig{Z: 5.0},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CascadeConfig maps the yaml gains onto the cascade's axis arrays.
func (c *Config) CascadeConfig() cascade.Config {
	return cascade.Config{
		Position: [3]pid.Params{
			c.Position.X.Params(),
			c.Position.Y.Params(),
			c.Position.Z.Params(),
		},
		Attitude: [3]pid.Params{
			c.Attitude.Roll.Params(),
			c.Attitude.Pitch.Params(),
			c.Attitude.Yaw.Params(),
		},
		Coupling: cascade.Coupling{Gain: c.Coupling.Gain, MaxTilt: c.Coupling.MaxTilt},
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration}
}

func (c *Config) InitState() (pos, att cascade.Vector3) {
	pos = cascade.Vector3{X: c.InitPos.X, Y: c.InitPos.Y, Z: c.InitPos.Z}
	att = cascade.Vector3{X: c.InitAtt.Roll, Y: c.InitAtt.Pitch, Z: c.InitAtt.Yaw}
	return pos, att
}

func (c *Config) Targets() (pos, att cascade.Vector3) {
	pos = cascade.Vector3{X: c.TargetPos.X, Y: c.TargetPos.Y, Z: c.TargetPos.Z}
	att = cascade.Vector3{X: c.TargetAtt.Roll, Y: c.TargetAtt.Pitch, Z: c.TargetAtt.Yaw}
	return pos, att
}

func (c *Config) SimWaypoints() []sim.Waypoint {
	wps := make([]sim.Waypoint, 0, len(c.Waypoints))
	for _, w := range c.Waypoints {
		wp := sim.Waypoint{At: w.At}
		if w.Position != nil {
			wp.Position = &cascade.Vector3{X: w.Position.X, Y: w.Position.Y, Z: w.Position.Z}
		}
		if w.Attitude != nil {
			wp.Attitude = &cascade.Vector3{X: w.Attitude.Roll, Y: w.Attitude.Pitch, Z: w.Attitude.Yaw}
		}
		wps = append(wps, wp)
	}
	return wps
}
