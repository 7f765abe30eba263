package viz

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quickreturn/internal/export"
	"github.com/san-kum/quickreturn/internal/linkage"
)

const historyCapacity = 120

// AnimateOptions controls a crank animation.
type AnimateOptions struct {
	// Start is the crank angle of the first frame, in radians.
	Start float64
	// FPS is the frame rate of the interactive view and of GIF files.
	FPS int
	Theme string
	// GIFPath is where the G key saves a recording.
	GIFPath string
}

type TickMsg time.Time

// Animator is a Bubble Tea model that turns the crank one sample per tick.
type Animator struct {
	mech    *linkage.Mechanism
	cfg     linkage.Config
	canvas  *Canvas
	view    View
	opts    AnimateOptions
	theme   int
	index   int
	step    float64
	sol     linkage.Solution
	err     error
	history []float64

	running   bool
	recording bool
	frames    []*image.Paletted
	status    string
	showHelp  bool
}

// NewAnimator builds an animator for the mechanism's current configuration.
func NewAnimator(m *linkage.Mechanism, opts AnimateOptions) *Animator {
	cfg := m.Config()
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "quickreturn.gif"
	}
	c := NewCanvas(canvasWidth, canvasHeight)
	a := &Animator{
		mech:    m,
		cfg:     cfg,
		canvas:  c,
		view:    FitView(cfg.Geometry, c, 72),
		opts:    opts,
		step:    crankStep(cfg.Omega2, cfg.Samples),
		history: make([]float64, 0, historyCapacity),
		running: true,
		theme:   themeIndex(opts.Theme),
	}
	a.solve()
	return a
}

// Angle is the crank angle of the current frame.
func (a *Animator) Angle() float64 {
	return a.opts.Start + float64(a.index)*a.step
}

func (a *Animator) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *Animator) Init() tea.Cmd {
	return a.tick()
}

func (a *Animator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case " ":
			a.running = !a.running
		case "[":
			a.running = false
			a.advance(-1)
		case "]":
			a.running = false
			a.advance(1)
		case "r":
			a.index = 0
			a.history = a.history[:0]
			a.solve()
		case "t":
			a.theme = (a.theme + 1) % len(Themes)
		case "g":
			a.toggleRecording()
		case "s":
			a.status = a.snapshot()
		case "?":
			a.showHelp = !a.showHelp
		}
	case TickMsg:
		if a.running {
			a.advance(1)
		}
		return a, a.tick()
	}
	return a, nil
}

// advance moves the crank by n samples, wrapping at a full revolution.
func (a *Animator) advance(n int) {
	a.index = ((a.index+n)%a.cfg.Samples + a.cfg.Samples) % a.cfg.Samples
	a.solve()
}

func (a *Animator) solve() {
	a.canvas.Clear()
	a.sol, a.err = a.mech.Solution(a.Angle())
	if a.err != nil {
		return
	}
	DrawMechanism(a.canvas, a.view, a.cfg.Geometry, a.sol)
	a.history = append(a.history, a.sol.R6)
	if len(a.history) > historyCapacity {
		a.history = a.history[1:]
	}
	if a.recording {
		a.frames = append(a.frames, frameImage(a.canvas))
	}
}

func (a *Animator) toggleRecording() {
	if !a.recording {
		a.recording = true
		a.frames = make([]*image.Paletted, 0, a.cfg.Samples)
		a.status = "REC"
		return
	}
	a.recording = false
	a.status = a.saveGIF()
	a.frames = nil
}

func (a *Animator) saveGIF() string {
	if len(a.frames) == 0 {
		return "nothing recorded"
	}
	f, err := os.Create(a.opts.GIFPath)
	if err != nil {
		return err.Error()
	}
	defer f.Close()
	if err := EncodeGIF(f, a.frames, gifDelay(a.opts.FPS)); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("saved %d frames to %s", len(a.frames), a.opts.GIFPath)
}

// snapshot saves the current canvas as an SVG next to the GIF path.
func (a *Animator) snapshot() string {
	path := fmt.Sprintf("quickreturn-%03.0f.svg", math.Mod(a.Angle()*180/math.Pi+360, 360))
	if dir := filepath.Dir(a.opts.GIFPath); dir != "." {
		path = filepath.Join(dir, path)
	}
	if err := os.WriteFile(path, []byte(export.BrailleToSVG(a.canvas.Grid, 3)), 0644); err != nil {
		return err.Error()
	}
	return "saved " + path
}

func (a *Animator) View() string {
	st := Themes[a.theme].styles()

	var s strings.Builder
	s.WriteString(st.header.Render(fmt.Sprintf("QUICK RETURN  %s  %s", a.cfg.Assembly, strings.ToUpper(a.cfg.Units.String()))) + "\n")

	state := "RUNNING"
	if !a.running {
		state = "PAUSED"
	}
	s.WriteString(st.status.Render(state))
	if a.status != "" {
		s.WriteString("  " + st.label.Render(a.status))
	}
	s.WriteString("\n\n")

	if len(a.history) > 1 {
		chart := asciigraph.Plot(a.history, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("slider "+a.cfg.Units.Length()))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	if a.err != nil {
		s.WriteString(st.err.Render(fmt.Sprintf("theta2=%.2f deg: %v", a.Angle()*180/math.Pi, a.err)) + "\n")
	} else {
		s.WriteString(st.readout(a.cfg, a.sol))
	}
	s.WriteString(st.help.Render("SP:Pause [ ]:Step R:Reset\nT:Theme G:Record S:Snap\n?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(a.canvas.String()), st.panel.Render(s.String()))
	if a.showHelp {
		return st.panel.Render(strings.Join([]string{
			"Space  pause / resume",
			"[  ]   step the crank back / forward",
			"R      reset to the start angle",
			"T      cycle themes",
			"G      start / stop GIF recording",
			"S      save the frame as SVG",
			"?      toggle this help",
			"Q      quit",
		}, "\n")) + "\n" + main
	}
	return main
}

// Animate runs one animation to out. Display starts the interactive view,
// Stream writes text frames for a single revolution and File records a GIF.
func Animate(m *linkage.Mechanism, out Output, opts AnimateOptions) error {
	if err := out.Validate(); err != nil {
		return err
	}
	switch out.Target {
	case Display:
		p := tea.NewProgram(NewAnimator(m, opts), tea.WithAltScreen())
		_, err := p.Run()
		return err
	case Stream:
		return StreamAnimation(out.writer(), m, opts.Start)
	case File:
		return writeGIFFile(out.Path, m, opts.Start, opts.FPS)
	}
	return fmt.Errorf("unknown output: %v", out.Target)
}
