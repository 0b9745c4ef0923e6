package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quadsim/internal/airframe"
	"github.com/san-kum/quadsim/internal/cascade"
	"github.com/san-kum/quadsim/internal/mixer"
)

const historyCap = 600

type TickMsg time.Time

// LiveModel steps the control loop at a frame rate and renders the state.
type LiveModel struct {
	ctrl  *cascade.Cascade
	plant *airframe.Model

	pos, att cascade.Vector3
	initPos  cascade.Vector3
	initAtt  cascade.Vector3
	motors   mixer.MotorCommand
	snap     cascade.Snapshot

	dt       float64
	duration float64
	fps      int
	t        float64
	running  bool
	altHist  []float64
	width    int
}

func NewLive(ctrl *cascade.Cascade, plant *airframe.Model, pos, att cascade.Vector3, dt, duration float64, fps int) LiveModel {
	if fps <= 0 {
		fps = 30
	}
	return LiveModel{
		ctrl:     ctrl,
		plant:    plant,
		pos:      pos,
		att:      att,
		initPos:  pos,
		initAtt:  att,
		dt:       dt,
		duration: duration,
		fps:      fps,
		running:  true,
		altHist:  make([]float64, 0, historyCap),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.t < m.duration {
				m.running = !m.running
			}
		case "r":
			m.ctrl.Reset()
			m.pos, m.att = m.initPos, m.initAtt
			m.t = 0
			m.altHist = m.altHist[:0]
			m.running = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case TickMsg:
		if m.running {
			// Wall-clock frame, simulated-time substeps.
			steps := int(1.0/(float64(m.fps)*m.dt) + 0.5)
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps && m.t < m.duration; i++ {
				m.motors, m.snap = m.ctrl.Update(m.pos, m.att, m.dt)
				m.pos, m.att = m.plant.Step(m.pos, m.att, m.ctrl.TargetPosition(), m.ctrl.TargetAttitude(), m.dt)
				m.t += m.dt
			}
			m.altHist = append(m.altHist, m.pos.Z)
			if len(m.altHist) > historyCap {
				m.altHist = m.altHist[1:]
			}
			if m.t >= m.duration {
				m.running = false
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("quadsim live"))
	b.WriteString("\n")

	stats := []string{
		statLine("time", fmt.Sprintf("%6.2fs / %.0fs", m.t, m.duration)),
		statLine("position", fmt.Sprintf("[%6.2f %6.2f %6.2f]", m.pos.X, m.pos.Y, m.pos.Z)),
		statLine("attitude", fmt.Sprintf("[%6.1f %6.1f %6.1f]", m.att.X, m.att.Y, m.att.Z)),
		statLine("target", fmt.Sprintf("[%6.2f %6.2f %6.2f]", m.ctrl.TargetPosition().X, m.ctrl.TargetPosition().Y, m.ctrl.TargetPosition().Z)),
		statLine("pos error", fmt.Sprintf("[%6.2f %6.2f %6.2f]", m.snap.PosErrors.X, m.snap.PosErrors.Y, m.snap.PosErrors.Z)),
		"",
		motorLine("FL", m.motors[mixer.FrontLeft]),
		motorLine("FR", m.motors[mixer.FrontRight]),
		motorLine("RR", m.motors[mixer.RearRight]),
		motorLine("RL", m.motors[mixer.RearLeft]),
	}
	b.WriteString(statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)))
	b.WriteString("\n")

	if len(m.altHist) > 1 {
		graph := asciigraph.Plot(m.altHist,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("altitude"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if !m.running && m.t >= m.duration {
		b.WriteString(doneStyle.Render("run complete"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r restart · q quit"))
	b.WriteString("\n")
	return b.String()
}

func statLine(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func motorLine(name string, v float64) string {
	const barWidth = 20
	filled := int(v * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return labelStyle.Render("motor "+name) + valueStyle.Render(fmt.Sprintf("%s %.2f", bar, v))
}

// RunLive drives the live view until the user quits.
func RunLive(ctrl *cascade.Cascade, plant *airframe.Model, pos, att cascade.Vector3, dt, duration float64, fps int) error {
	p := tea.NewProgram(NewLive(ctrl, plant, pos, att, dt, duration, fps))
	_, err := p.Run()
	return err
}
