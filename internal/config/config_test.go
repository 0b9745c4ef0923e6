package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/quadsim/internal/cascade"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt != 0.02 || cfg.Duration != 10.0 {
		t.Errorf("unexpected timing defaults: dt=%f duration=%f", cfg.Dt, cfg.Duration)
	}
	if cfg.Position.Z.Kp != 2.0 || cfg.Position.Z.OutMax != 15.0 {
		t.Errorf("unexpected z axis defaults: %+v", cfg.Position.Z)
	}
	if cfg.Attitude.Yaw.OutMax != 60.0 {
		t.Errorf("unexpected yaw defaults: %+v", cfg.Attitude.Yaw)
	}
	if cfg.Coupling.Gain != 0.1 || cfg.Coupling.MaxTilt != 30.0 {
		t.Errorf("unexpected coupling defaults: %+v", cfg.Coupling)
	}
}

func TestCascadeConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cc := cfg.CascadeConfig()

	if cc.Position[cascade.AxisZ].OutMax != 15.0 {
		t.Errorf("z OutMax not mapped: %+v", cc.Position[cascade.AxisZ])
	}
	if cc.Attitude[cascade.AxisRoll].Kp != 2.0 {
		t.Errorf("roll Kp not mapped: %+v", cc.Attitude[cascade.AxisRoll])
	}
	if cc.Attitude[cascade.AxisYaw].OutMax != 60.0 {
		t.Errorf("yaw OutMax not mapped: %+v", cc.Attitude[cascade.AxisYaw])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.yaml")

	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Attitude.Roll.Kp = 3.5
	cfg.Waypoints = []WaypointConfig{{At: 2.0, Position: &VecConfig{X: 1, Y: 2, Z: 3}}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Dt != 0.01 {
		t.Errorf("dt not round-tripped: %f", loaded.Dt)
	}
	if loaded.Attitude.Roll.Kp != 3.5 {
		t.Errorf("roll kp not round-tripped: %f", loaded.Attitude.Roll.Kp)
	}
	if len(loaded.Waypoints) != 1 || loaded.Waypoints[0].Position.Z != 3 {
		t.Errorf("waypoints not round-tripped: %+v", loaded.Waypoints)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q not found", name)
		}
		if cfg.Dt <= 0 || cfg.Duration <= 0 {
			t.Errorf("preset %q has invalid timing: dt=%f duration=%f", name, cfg.Dt, cfg.Duration)
		}
	}

	if GetPreset("backflip") != nil {
		t.Error("unknown preset should return nil")
	}

	hover := GetPreset("hover")
	if len(hover.Waypoints) != 2 {
		t.Errorf("hover preset should have 2 waypoints, got %d", len(hover.Waypoints))
	}
}

func TestInitStateMapping(t *testing.T) {
	cfg := DefaultConfig()
	pos, att := cfg.InitState()

	if pos != (cascade.Vector3{X: 0.5, Y: -0.3, Z: 0}) {
		t.Errorf("unexpected init position: %v", pos)
	}
	if att != (cascade.Vector3{X: 2.0, Y: -1.5, Z: 5.0}) {
		t.Errorf("unexpected init attitude: %v", att)
	}
}

func TestSimWaypoints(t *testing.T) {
	cfg := GetPreset("hover")
	wps := cfg.SimWaypoints()

	if len(wps) != 2 {
		t.Fatalf("expected 2 waypoints, got %d", len(wps))
	}
	if wps[0].Position == nil || wps[0].Position.X != 2 {
		t.Errorf("position waypoint not mapped: %+v", wps[0])
	}
	if wps[1].Attitude == nil || wps[1].Attitude.Z != 20 {
		t.Errorf("attitude waypoint not mapped: %+v", wps[1])
	}
}
