package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/metrics"
	"github.com/san-kum/blobline/internal/sequencer"
)

const (
	defaultCols     = 80
	defaultLines    = 24
	panelWidth      = 34
	historyCapacity = 400
)

type TickMsg time.Time

// Builder returns a freshly populated sequencer for seed.
type Builder func(seed int64) (*sequencer.Sequencer, error)

// Model holds the live run: the sequencer, the rows on screen and the
// luminance history.
type Model struct {
	build     Builder
	seed      int64
	seq       *sequencer.Sequencer
	frames    int
	noise     int
	fps       int
	rows      []blob.Row
	luminance []float64
	running   bool
	cols      int
	lines     int
	progress  progress.Model
	theme     Theme
	err       error
}

// NewModel builds the first sequencer immediately so a bad config fails
// before the program starts.
func NewModel(build Builder, seed int64, frames, noise, fps int) (Model, error) {
	seq, err := build(seed)
	if err != nil {
		return Model{}, err
	}
	return Model{
		build:     build,
		seed:      seed,
		seq:       seq,
		frames:    frames,
		noise:     noise,
		fps:       max(fps, 1),
		rows:      make([]blob.Row, 0, historyCapacity),
		luminance: make([]float64, 0, historyCapacity),
		running:   true,
		cols:      defaultCols,
		lines:     defaultLines,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(panelWidth-4),
			progress.WithoutPercentage(),
		),
		theme: CurrentTheme,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-panelWidth-4, 10)
		m.lines = max(msg.Height-2, 4)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset(m.seed + 1)
		case "t":
			m.theme = NextTheme(m.theme.Name)
		}
	case TickMsg:
		if m.running && !m.Done() && m.err == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// Done reports whether every requested frame has been produced.
func (m Model) Done() bool { return m.seq.Frame() >= m.frames }

func (m *Model) step() {
	row, err := m.seq.Next(m.noise)
	if err != nil {
		m.err = err
		return
	}

	m.rows = append(m.rows, row)
	if len(m.rows) > historyCapacity {
		m.rows = m.rows[1:]
	}
	m.luminance = append(m.luminance, metrics.SeriesOf([]blob.Row{row})[0])
	if len(m.luminance) > historyCapacity {
		m.luminance = m.luminance[1:]
	}
}

func (m *Model) reset(seed int64) {
	seq, err := m.build(seed)
	if err != nil {
		m.err = err
		return
	}
	m.seed = seed
	m.seq = seq
	m.rows = m.rows[:0]
	m.luminance = m.luminance[:0]
	m.err = nil
	m.running = true
}

// visible returns the newest rows that fit on screen, oldest first.
func (m Model) visible() []blob.Row {
	n := m.lines * 2
	if len(m.rows) <= n {
		return m.rows
	}
	return m.rows[len(m.rows)-n:]
}

func (m Model) View() string {
	st := stylesFor(m.theme)

	var s strings.Builder
	s.WriteString(st.header.Render("BLOBLINE") + "\n")
	switch {
	case m.err != nil:
		s.WriteString(st.paused.Render("ERROR") + "\n")
	case m.Done():
		s.WriteString(st.running.Render("DONE") + "\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n")
	}
	s.WriteString("\n")

	frame := m.seq.Frame()
	pct := 1.0
	if m.frames > 0 {
		pct = float64(frame) / float64(m.frames)
	}
	s.WriteString(m.progress.ViewAs(pct) + "\n\n")

	s.WriteString(st.label.Render("Frame") + st.value.Render(fmt.Sprintf("%d/%d", frame, m.frames)) + "\n")
	s.WriteString(st.label.Render("Seed") + st.value.Render(fmt.Sprintf("%d", m.seed)) + "\n")
	s.WriteString(st.label.Render("Blobs") + st.value.Render(fmt.Sprintf("%d", m.seq.Space().Len())) + "\n")
	s.WriteString(st.label.Render("Width") + st.value.Render(fmt.Sprintf("%d px", m.seq.Space().Width)) + "\n")
	s.WriteString(st.label.Render("Noise") + st.value.Render(fmt.Sprintf("±%d", m.noise)) + "\n")
	if m.err != nil {
		s.WriteString("\n" + st.paused.Render(m.err.Error()) + "\n")
	}

	if len(m.luminance) > 1 {
		chart := asciigraph.Plot(m.luminance,
			asciigraph.Height(5),
			asciigraph.Width(panelWidth-10),
			asciigraph.Caption("luminance"),
		)
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("\nSPC:Pause R:Reseed T:Theme Q:Quit"))

	panel := st.panel.Width(panelWidth).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, RenderRows(m.visible(), m.cols), " ", panel)
}

// Run starts the program on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
