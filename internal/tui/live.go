// Package tui provides a live terminal viewer for a running simulation
// space. It drives the space's tick loop itself and reads only the public
// observer surface.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/space"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

type tickMsg time.Time

// Viewer ticks a space and renders its bodies on a braille canvas.
type Viewer struct {
	space  *space.Space
	tick   time.Duration
	canvas *Canvas
	paused bool

	ticks       int
	collisions  int
	lastImpulse float64
}

func NewViewer(s *space.Space, tickRate int, worldWidth float64) *Viewer {
	v := &Viewer{
		space: s,
		tick:  time.Second / time.Duration(tickRate),
		canvas: NewCanvas(canvasWidth, canvasHeight,
			-worldWidth/2, worldWidth/2, -2, worldWidth),
	}
	s.OnBlockCollision(func(el body.PhysicsElement, blk *body.Block, impulse float64) {
		v.collisions++
		v.lastImpulse = impulse
	})
	s.OnElementCollision(func(a, b body.PhysicsElement, impulse float64) {
		v.collisions++
		v.lastImpulse = impulse
	})
	return v
}

func (v *Viewer) Init() tea.Cmd { return v.tickCmd() }

func (v *Viewer) tickCmd() tea.Cmd {
	return tea.Tick(v.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		case "p", " ":
			v.paused = !v.paused
		}
	case tickMsg:
		v.ticks++
		paused := v.paused
		v.space.Step(func() bool { return !paused })
		return v, v.tickCmd()
	}
	return v, nil
}

func (v *Viewer) View() string {
	v.canvas.Clear()
	for _, b := range v.space.Registry().All() {
		v.canvas.DrawBody(b)
	}

	status := fmt.Sprintf(" tick %d  bodies %d  collisions %d  impulse %.2f",
		v.ticks, v.space.Registry().Len(), v.collisions, v.lastImpulse)

	var phase string
	switch {
	case v.paused:
		phase = yellow.Render("paused")
	case v.space.IsInPresim():
		phase = yellow.Render("presim")
	case v.space.IsStepping():
		phase = green.Render("stepping")
	default:
		phase = green.Render("live")
	}

	return cyan.Render(v.canvas.String()) +
		dim.Render(status) + "  " + phase + "\n" +
		dim.Render(" q quit · p pause") + "\n"
}
