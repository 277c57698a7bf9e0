package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"scr/internal/driver"
)

// maxRows bounds the file list; large directories only show the files being
// lexed, the failures and the latest finished ones.
const maxRows = 12

type (
	eventMsg driver.ProgressEvent
	doneMsg  struct{}
)

type fileRow struct {
	path   string
	status driver.ProgressStatus
	note   string
	seq    int // порядок завершения, 0 пока файл не закончен
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	noteStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle = map[driver.ProgressStatus]lipgloss.Style{
		driver.ProgressQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.ProgressStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.ProgressDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.ProgressFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type progressModel struct {
	title  string
	events <-chan driver.ProgressEvent
	spin   spinner.Model
	bar    progress.Model
	rows   []fileRow
	byPath map[string]int
	width  int

	finished, tokens, diags int
	done                    bool
}

// NewProgressModel renders the per-file progress of TokenizeDir.
// It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	m := &progressModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle[driver.ProgressStarted])),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   make([]fileRow, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: driver.ProgressQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for one event from the workers.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.ProgressEvent(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func finished(s driver.ProgressStatus) bool {
	return s == driver.ProgressDone || s == driver.ProgressFailed
}

func (m *progressModel) apply(ev driver.ProgressEvent) tea.Cmd {
	i, ok := m.byPath[ev.Path]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	if finished(row.status) {
		// повторное событие для уже учтённого файла
		return nil
	}
	row.status = ev.Status
	switch ev.Status {
	case driver.ProgressDone:
		row.note = fmt.Sprintf("%d tokens", ev.Tokens)
		if ev.Diagnostics > 0 {
			row.note += fmt.Sprintf(", %d diagnostics", ev.Diagnostics)
		}
		if ev.Elapsed > 0 {
			row.note += ", " + ev.Elapsed.Round(time.Microsecond).String()
		}
		m.tokens += ev.Tokens
		m.diags += ev.Diagnostics
	case driver.ProgressFailed:
		row.note = "cannot read file"
		m.diags += ev.Diagnostics
	}
	if finished(ev.Status) {
		m.finished++
		row.seq = m.finished
	}
	return m.bar.SetPercent(float64(m.finished) / float64(len(m.rows)))
}

// visible picks the rows worth showing, in file order.
func (m *progressModel) visible() (rows []fileRow, hidden int) {
	if len(m.rows) <= maxRows {
		return m.rows, 0
	}
	recent := m.finished - maxRows/2
	for _, r := range m.rows {
		keep := r.status == driver.ProgressStarted ||
			r.status == driver.ProgressFailed ||
			(r.status == driver.ProgressDone && r.seq > recent)
		if keep && len(rows) < maxRows {
			rows = append(rows, r)
		}
	}
	return rows, len(m.rows) - len(rows)
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d files, %d tokens, %d diagnostics)",
		m.title, m.finished, len(m.rows), m.tokens, m.diags)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spin.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(header) + "\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-16, 20)
	rows, hidden := m.visible()
	for _, r := range rows {
		status := statusStyle[r.status].Render(fmt.Sprintf("%*s", statusWidth, r.status))
		fmt.Fprintf(&b, "  %s %s", status, truncate(r.path, nameWidth))
		if r.note != "" {
			b.WriteString("  " + noteStyle.Render(r.note))
		}
		b.WriteByte('\n')
	}
	if hidden > 0 {
		b.WriteString(noteStyle.Render(fmt.Sprintf("  … %d more", hidden)) + "\n")
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	default:
		return runewidth.Truncate(value, width-3, "...")
	}
}
