package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/quadsim/internal/sim"
)

// ExportData is the flat JSON shape consumed by external plotting tools.
type ExportData struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	Positions [][3]float64       `json:"positions"`
	Attitudes [][3]float64       `json:"attitudes"`
	TargetPos [][3]float64       `json:"target_positions"`
	TargetAtt [][3]float64       `json:"target_attitudes"`
	Motors    [][4]float64       `json:"motors"`
	Metrics   map[string]float64 `json:"metrics"`
}

// ExportJSON writes one run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:        meta.ID,
		Preset:    meta.Preset,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Steps:     len(result.Times),
		Times:     result.Times,
		Positions: make([][3]float64, len(result.Positions)),
		Attitudes: make([][3]float64, len(result.Attitudes)),
		TargetPos: make([][3]float64, len(result.TargetPos)),
		TargetAtt: make([][3]float64, len(result.TargetAtt)),
		Motors:    make([][4]float64, len(result.Motors)),
		Metrics:   meta.Metrics,
	}

	for i, p := range result.Positions {
		data.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, a := range result.Attitudes {
		data.Attitudes[i] = [3]float64{a.X, a.Y, a.Z}
	}
	for i, p := range result.TargetPos {
		data.TargetPos[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, a := range result.TargetAtt {
		data.TargetAtt[i] = [3]float64{a.X, a.Y, a.Z}
	}
	for i, m := range result.Motors {
		data.Motors[i] = [4]float64(m)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
