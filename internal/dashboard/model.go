package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"floodex/internal/exercise"
	"floodex/internal/missionlog"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

const maxLogLines = 1000

// stateMsg carries a full exercise snapshot.
type stateMsg struct{ snap exercise.Snapshot }

// toastMsg carries an advisory addressed to this viewer.
type toastMsg struct {
	level   string
	message string
}

// disconnectedMsg reports that the server connection dropped.
type disconnectedMsg struct{}

type model struct {
	url        string
	events     table.Model
	resources  table.Model
	vp         viewport.Model
	logs       []string
	logCount   int
	snap       exercise.Snapshot
	haveState  bool
	connected  bool
	toast      string
	toastLevel string
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newModel(url string) model {
	eventCols := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Status", Width: 12},
		{Title: "Crit", Width: 5},
		{Title: "TTL", Width: 8},
	}
	resourceCols := []table.Column{
		{Title: "Resource", Width: 24},
		{Title: "Available", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Lock", Width: 10},
	}
	return model{
		url:        url,
		events:     table.New(table.WithColumns(eventCols)),
		resources:  table.New(table.WithColumns(resourceCols)),
		vp:         viewport.New(0, 0),
		connected:  true,
		autoscroll: true,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.events.SetWidth(msg.Width)
		m.resources.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown":
				m.vp.LineDown(10)
			case "pgup":
				m.vp.LineUp(10)
			}
		}
		return m, nil
	case stateMsg:
		m.applyState(msg.snap)
	case toastMsg:
		m.toast = msg.message
		m.toastLevel = msg.level
	case disconnectedMsg:
		m.connected = false
	}
	return m, nil
}

// applyState rebuilds the tables and appends any mission log entries not
// yet shown. The log is append-only, so new entries are always a suffix.
func (m *model) applyState(snap exercise.Snapshot) {
	m.snap = snap
	m.haveState = true

	eventRows := make([]table.Row, 0, len(snap.Events))
	for _, ev := range snap.Events {
		eventRows = append(eventRows, table.Row{
			ev.Title, string(ev.Category), string(ev.Status), critCell(ev.Critical), ttlCell(ev),
		})
	}
	m.events.SetRows(eventRows)
	m.events.SetHeight(len(eventRows) + 1)

	resourceRows := make([]table.Row, 0, len(snap.Resources))
	for _, r := range snap.Resources {
		resourceRows = append(resourceRows, table.Row{
			r.Name,
			fmt.Sprintf("%d %s", r.Available, r.Unit),
			fmt.Sprintf("%d", r.Total),
			lockCell(r),
		})
	}
	m.resources.SetRows(resourceRows)
	m.resources.SetHeight(len(resourceRows) + 1)

	if len(snap.MissionLog) < m.logCount {
		// Server restarted with a shorter history; start over.
		m.logs = nil
		m.logCount = 0
	}
	for _, e := range snap.MissionLog[m.logCount:] {
		m.logs = append(m.logs, formatLogLine(e))
	}
	m.logCount = len(snap.MissionLog)
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}

	m.updateViewportHeight()
	m.refreshViewport()
}

func (m *model) updateViewportHeight() {
	used := m.events.Height() + m.resources.Height() + 8
	h := m.height - used
	if h < 3 {
		h = 3
	}
	m.vp.Height = h
}

func (m *model) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap && m.vp.Width > 0 {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m model) View() string {
	if !m.haveState {
		return fmt.Sprintf("Connecting to %s ...", m.url)
	}
	divider := strings.Repeat("─", max(m.width, 1))
	sections := []string{
		m.renderHeader(),
		divider,
		"Events:",
		m.events.View(),
		"Resources:",
		m.resources.View(),
		divider,
		"Mission Log:",
		m.vp.View(),
		divider,
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m model) renderHeader() string {
	active, critical := 0, 0
	for _, ev := range m.snap.Events {
		if ev.Status == exercise.EventActive || ev.Status == exercise.EventInProgress {
			active++
			if ev.Critical && ev.Status == exercise.EventActive {
				critical++
			}
		}
	}
	score := fmt.Sprintf("%sResilience %.1f%s", scoreColor(m.snap.ResilienceScore), m.snap.ResilienceScore, colorReset)
	return fmt.Sprintf("%s  %stick=%d%s %sactive=%d%s %scritical=%d%s %stasks=%d%s",
		score,
		colorGray, m.snap.Tick, colorReset,
		colorBlue, active, colorReset,
		colorRed, critical, colorReset,
		colorCyan, len(m.snap.Tasks), colorReset)
}

func (m model) renderFooter() string {
	connColor := lipgloss.Color("10")
	connLabel := "connected"
	if !m.connected {
		connColor = lipgloss.Color("9")
		connLabel = "disconnected"
	}
	conn := lipgloss.NewStyle().Foreground(connColor).Render("● " + connLabel)

	line := fmt.Sprintf("%s | q quit | w wrap | s auto-scroll", conn)
	if m.toast != "" {
		c := colorGreen
		if m.toastLevel == exercise.NoticeError {
			c = colorRed
		}
		line = fmt.Sprintf("%s%s%s\n%s", c, m.toast, colorReset, line)
	}
	return line
}

func formatLogLine(e missionlog.Entry) string {
	return fmt.Sprintf("%s[%s]%s %s%-10s%s %s%s%s %s",
		colorGray, e.Timestamp.Format(time.RFC3339), colorReset,
		actionColor(e.Action), e.Action, colorReset,
		colorCyan, e.User, colorReset,
		e.Details)
}

func actionColor(a missionlog.Action) string {
	switch a {
	case missionlog.ActionFailure, missionlog.ActionEscalation:
		return colorRed
	case missionlog.ActionResolve:
		return colorGreen
	case missionlog.ActionScenario:
		return colorMagenta
	case missionlog.ActionResource:
		return colorYellow
	default:
		return colorBlue
	}
}

func scoreColor(score float64) string {
	switch {
	case score < 40:
		return colorRed
	case score < 70:
		return colorYellow
	default:
		return colorGreen
	}
}

func critCell(critical bool) string {
	if critical {
		return "yes"
	}
	return "no"
}

func ttlCell(ev exercise.Event) string {
	if ev.Status != exercise.EventActive || !ev.Critical {
		return "-"
	}
	return (time.Duration(ev.TTLRemainingMS) * time.Millisecond).Truncate(time.Second).String()
}

func lockCell(r exercise.Resource) string {
	if r.LockedUntil == nil {
		return "-"
	}
	return r.LockedUntil.Format("15:04:05")
}
