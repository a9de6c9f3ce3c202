package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/trace"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	trailCapacity   = 2000
	maxStepsPerTick = 512
	seekFrames      = 5
	frameInterval   = time.Second / 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// WatchConfig describes a live run. Dt and Duration are ignored when
// replaying a trace.
type WatchConfig struct {
	Dt       float64
	Duration float64
	Theme    string
}

// Model is the bubbletea model of the watch view. It either advances a
// universe it owns with an engine, or replays recorded trace frames. In
// both cases state only changes from Update.
type Model struct {
	engine   *physics.Engine
	universe *dynamo.Universe
	initial  *dynamo.Universe
	cfg      WatchConfig

	// replay source; nil for live runs
	frames []trace.Frame
	frame  int

	t        float64
	step     int
	total    int
	running  bool
	done     bool
	perTick  int
	focus    int
	showHelp bool

	canvas  *Canvas
	camera  *Camera
	trail   [][2]int
	energy0 float64
	drift   []float64

	theme  Theme
	styles Styles
}

func newModel(u *dynamo.Universe, cfg WatchConfig) Model {
	th := ThemeByName(cfg.Theme)
	m := Model{
		universe: u,
		cfg:      cfg,
		running:  true,
		perTick:  1,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		trail:    make([][2]int, 0, trailCapacity),
		drift:    make([]float64, 0, historyCapacity),
		theme:    th,
		styles:   NewStyles(th),
	}
	m.camera = NewCamera(FitSpan(u.All(), m.center()))
	m.energy0 = physics.TotalEnergy(u.All())
	return m
}

// NewModel watches a fresh run of engine over u.
func NewModel(engine *physics.Engine, u *dynamo.Universe, cfg WatchConfig) Model {
	m := newModel(u, cfg)
	m.engine = engine
	m.initial = u.Clone()
	m.total = sim.StepCount(sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	return m
}

// NewReplayModel plays back frames read from a trace, one frame per step.
func NewReplayModel(frames []trace.Frame, cfg WatchConfig) (Model, error) {
	if len(frames) == 0 {
		return Model{}, errors.New("replay: trace has no frames")
	}
	m := newModel(dynamo.NewUniverseFrom(frames[0].Bodies), cfg)
	m.frames = frames
	m.total = len(frames)
	m.loadFrame(0)
	m.done = len(frames) == 1
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.camera.ZoomIn()
			m.trail = m.trail[:0]
		case "-", "_":
			m.camera.ZoomOut()
			m.trail = m.trail[:0]
		case "]":
			m.perTick = min(m.perTick*2, maxStepsPerTick)
		case "[":
			m.perTick = max(m.perTick/2, 1)
		case "right", "f":
			m.seek(seekFrames)
		case "left", "b":
			m.seek(-seekFrames)
		case "tab":
			if n := m.universe.Len(); n > 0 {
				m.focus = (m.focus + 1) % n
			}
			m.trail = m.trail[:0]
		case "shift+tab":
			if n := m.universe.Len(); n > 0 {
				m.focus = (m.focus + n - 1) % n
			}
			m.trail = m.trail[:0]
		case "x":
			m.camera.RotateX(0.1)
			m.trail = m.trail[:0]
		case "y":
			m.camera.RotateY(0.1)
			m.trail = m.trail[:0]
		case "t":
			m.theme = nextTheme(m.theme.Name)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance(m.perTick)
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) replaying() bool { return m.frames != nil }

// advance moves n steps forward, stopping at the end of the run or trace.
func (m *Model) advance(n int) {
	if m.replaying() {
		m.loadFrame(min(m.frame+n, len(m.frames)-1))
		m.done = m.frame == len(m.frames)-1
	} else {
		for i := 0; i < n && m.t < m.cfg.Duration; i++ {
			m.engine.Advance(m.universe, m.cfg.Dt)
			m.t += m.cfg.Dt
			m.step++
		}
		m.done = m.t >= m.cfg.Duration
	}

	m.sample()
	m.record()
}

// seek jumps delta frames in a replay. Live runs cannot move backwards, so
// it is a no-op there.
func (m *Model) seek(delta int) {
	if !m.replaying() {
		return
	}
	m.loadFrame(max(0, min(m.frame+delta, len(m.frames)-1)))
	m.done = m.frame == len(m.frames)-1
	m.trail = m.trail[:0]
}

func (m *Model) loadFrame(i int) {
	f := m.frames[i]
	m.frame = i
	m.universe = dynamo.NewUniverseFrom(f.Bodies)
	m.t = f.Time
	m.step = f.Step
}

func (m *Model) sample() {
	e := physics.TotalEnergy(m.universe.All())
	rel := 0.0
	if m.energy0 != 0 {
		rel = (e - m.energy0) / math.Abs(m.energy0)
	}
	m.drift = append(m.drift, rel)
	if len(m.drift) > historyCapacity {
		m.drift = m.drift[1:]
	}
}

// record appends the projected body positions to the trail.
func (m *Model) record() {
	m.camera.Center = m.center()
	sw, sh := m.canvas.Dots()
	for _, b := range m.universe.All() {
		if x, y, ok := m.camera.Project(b.Position, sw, sh); ok {
			m.trail = append(m.trail, [2]int{x, y})
		}
	}
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[len(m.trail)-trailCapacity:]
	}
}

func (m *Model) reset() {
	if m.replaying() {
		m.loadFrame(0)
		m.done = len(m.frames) == 1
	} else {
		m.universe = m.initial.Clone()
		m.t, m.step = 0, 0
		m.done = false
	}
	m.trail = m.trail[:0]
	m.drift = m.drift[:0]
}

func (m Model) center() dynamo.Vector3 {
	if m.focus < m.universe.Len() {
		return m.universe.At(m.focus).Position
	}
	return dynamo.Vector3{}
}

// Steps reports the step of the state on screen: steps taken for a live
// run, the recorded step counter for a replay.
func (m Model) Steps() int { return m.step }

// Frame is the index of the replayed frame; always 0 for live runs.
func (m Model) Frame() int { return m.frame }

// Universe exposes the state on screen, mainly for tests and final reporting.
func (m Model) Universe() *dynamo.Universe { return m.universe }

// Focused returns the body the view is centred on.
func (m Model) Focused() (dynamo.Body, bool) {
	if m.focus < m.universe.Len() {
		return *m.universe.At(m.focus), true
	}
	return dynamo.Body{}, false
}

func (m Model) draw() {
	m.canvas.Clear()
	m.camera.Center = m.center()
	sw, sh := m.canvas.Dots()

	for _, p := range m.trail {
		m.canvas.Set(p[0], p[1])
	}

	for i, b := range m.universe.All() {
		x, y, ok := m.camera.Project(b.Position, sw, sh)
		if !ok {
			continue
		}
		r := 0
		if i == 0 || i == m.focus {
			r = 1
		}
		m.canvas.Disc(x, y, r)
	}
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	title := "ORBITSIM"
	if m.replaying() {
		title = "ORBITSIM REPLAY"
	}

	var s strings.Builder
	s.WriteString(st.Title.Render(fmt.Sprintf("%s  %d bodies", title, m.universe.Len())) + "\n")

	status := st.Running.Render("RUNNING")
	switch {
	case m.done:
		status = st.Done.Render("DONE")
	case !m.running:
		status = st.Paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + st.Value.Render(value) + "\n")
	}
	if m.replaying() {
		row("Frame", fmt.Sprintf("%d / %d", m.frame+1, m.total))
		row("Step", fmt.Sprintf("%d", m.step))
		row("Speed", fmt.Sprintf("x%d frames", m.perTick))
	} else {
		row("Step", fmt.Sprintf("%d / %d", m.step, m.total))
		row("dt", fmt.Sprintf("%g s x%d", m.cfg.Dt, m.perTick))
	}
	row("Time", fmt.Sprintf("%s s (%.2f d)", trace.FormatTime(m.t), m.t/86400))
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom))

	drift := 0.0
	if len(m.drift) > 0 {
		drift = m.drift[len(m.drift)-1]
	}
	row("dE/E0", fmt.Sprintf("%.3e", drift))
	if len(m.drift) > 0 {
		row("Trend", Sparkline(m.drift, 24))
	}

	if b, ok := m.Focused(); ok {
		s.WriteString("\n" + st.Title.Render(fmt.Sprintf("%s (%d/%d)", b.Name, m.focus+1, m.universe.Len())) + "\n")
		row("Mass", fmt.Sprintf("%.3e kg", b.Mass))
		row("Position", fmt.Sprintf("(%.2e, %.2e, %.2e) m", b.Position.X, b.Position.Y, b.Position.Z))
		row("Velocity", fmt.Sprintf("(%.2e, %.2e, %.2e) m/s", b.Velocity.X, b.Velocity.Y, b.Velocity.Z))
		row("Speed", fmt.Sprintf("%.2e m/s", b.Velocity.Norm()))
	}

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy drift"))
		s.WriteString("\n" + st.Graph.Render(chart) + "\n")
	}

	s.WriteString("\n" + st.Muted.Render("SP:pause R:restart Q:quit ?:help"))

	canvasView := st.Panel.Render(strings.TrimRight(m.canvas.String(), "\n"))
	statsView := lipgloss.NewStyle().Padding(0, 2).Width(56).Render(s.String())
	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return st.Panel.Render(helpText) + "\n" + view
	}
	return view
}

const helpText = `Space      pause / resume
R          restart from the first state
+ -        zoom in / out
[ ]        halve / double steps per frame
<- ->      rewind / fast-forward 5 frames (replay)
Tab S-Tab  centre on next / previous body
X Y        rotate view
T          cycle theme
Q          quit`
