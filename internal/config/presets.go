package config

import "sort"

// Presets are the canned scenarios. Each starts from the default tune and
// overrides what the scenario needs.
var presets = map[string]func() *Config{
	// Climb to 5m, then fly to a lateral waypoint and finally yaw away.
	"hover": func() *Config {
		cfg := DefaultConfig()
		cfg.Waypoints = []WaypointConfig{
			{At: 4.0, Position: &VecConfig{X: 2, Y: 1, Z: 5}},
			{At: 8.0, Attitude: &AttConfig{Roll: 10, Pitch: 5, Yaw: 20}},
		}
		return cfg
	},
	// Pure step response on all position axes, softer integral action.
	"step": func() *Config {
		cfg := DefaultConfig()
		for _, a := range []*AxisConfig{&cfg.Position.X, &cfg.Position.Y, &cfg.Position.Z} {
			a.Kp, a.Ki, a.Kd = 1.5, 0.1, 0.5
		}
		for _, a := range []*AxisConfig{&cfg.Attitude.Roll, &cfg.Attitude.Pitch, &cfg.Attitude.Yaw} {
			a.Kp, a.Ki, a.Kd = 2.5, 0.3, 0.4
		}
		cfg.InitPos = VecConfig{}
		cfg.InitAtt = AttConfig{}
		cfg.TargetPos = VecConfig{X: 2, Y: 2, Z: 5}
		return cfg
	},
	// Square-ish waypoint circuit at constant altitude.
	"tracking": func() *Config {
		cfg := DefaultConfig()
		for _, a := range []*AxisConfig{&cfg.Position.X, &cfg.Position.Y, &cfg.Position.Z} {
			a.Kp, a.Ki, a.Kd = 1.2, 0.15, 0.6
		}
		for _, a := range []*AxisConfig{&cfg.Attitude.Roll, &cfg.Attitude.Pitch, &cfg.Attitude.Yaw} {
			a.Kp, a.Ki, a.Kd = 2.0, 0.4, 0.35
		}
		cfg.Duration = 20.0
		cfg.Waypoints = []WaypointConfig{
			{At: 5.0, Position: &VecConfig{X: 3, Y: 0, Z: 5}},
			{At: 10.0, Position: &VecConfig{X: 3, Y: 3, Z: 5}},
			{At: 15.0, Position: &VecConfig{X: 0, Y: 3, Z: 5}},
		}
		return cfg
	},
}

// GetPreset returns a fresh config for a named preset, or nil.
func GetPreset(name string) *Config {
	f, ok := presets[name]
	if !ok {
		return nil
	}
	return f()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
