// Package ui provides the read-only workshop board: the pending queue,
// mechanics with their assigned work, and recent activity.
// Uses Bubbletea for the interactive display.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/marcus/workshop/internal/journal"
	"github.com/marcus/workshop/internal/workshop"
)

// Panel represents which panel is currently focused.
type Panel int

const (
	PanelQueue Panel = iota
	PanelMechanics
	PanelActivity
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelQueue:
		return "Queue"
	case PanelMechanics:
		return "Mechanics"
	case PanelActivity:
		return "Activity"
	default:
		return "Unknown"
	}
}

// QueueItem is a pending task as shown on the board.
type QueueItem struct {
	ID          int
	Description string
	Vehicle     string
	Priority    int
	Created     time.Time
}

// AssignedItem is a task on a mechanic's list.
type AssignedItem struct {
	Description string
	Priority    int
	Done        bool
}

// MechanicItem is a mechanic and their tasks. Open counts the tasks not
// yet completed.
type MechanicItem struct {
	ID    int
	Name  string
	Open  int
	Tasks []AssignedItem
}

// Snapshot is the shop state the board renders. The board never
// writes back to the shop.
type Snapshot struct {
	Shop      string
	Manager   string
	Queue     []QueueItem
	Mechanics []MechanicItem
	Activity  []journal.Event
	SlotLine  string
}

// SnapshotOf copies what the board needs out of shop.
func SnapshotOf(shop *workshop.Shop) Snapshot {
	snap := Snapshot{
		Shop:     shop.Name(),
		Manager:  shop.Manager().Name,
		Activity: shop.Activity(),
		SlotLine: shop.NextSlotLine(),
	}
	for _, t := range shop.PendingTasks() {
		snap.Queue = append(snap.Queue, QueueItem{
			ID:          t.ID,
			Description: t.Description,
			Vehicle:     t.VehicleDetails,
			Priority:    t.Priority,
			Created:     t.CreatedAt,
		})
	}
	for _, m := range shop.Mechanics() {
		item := MechanicItem{ID: m.ID, Name: m.Name, Open: m.Pending()}
		for _, t := range m.Tasks() {
			item.Tasks = append(item.Tasks, AssignedItem{
				Description: t.Description,
				Priority:    t.Priority,
				Done:        t.IsCompleted(),
			})
		}
		snap.Mechanics = append(snap.Mechanics, item)
	}
	return snap
}

// Model holds the TUI state.
type Model struct {
	// Display state
	width       int
	height      int
	activePanel Panel
	quitting    bool

	snap Snapshot
	now  time.Time

	// Queue selection
	selectedTask int
	taskScroll   int

	mechScroll     int
	activityScroll int

	styles *Styles
}

// Styles holds lipgloss styles for the UI.
type Styles struct {
	// Panel borders
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	// Text styles
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style

	// Status indicators
	StatusOK      lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusRunning lipgloss.Style

	TaskSelected lipgloss.Style

	// Help bar
	HelpKey  lipgloss.Style
	HelpText lipgloss.Style
}

// newStyles creates the default style set.
func newStyles() *Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#666", Dark: "#888"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	green := lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#3fb950"}
	yellow := lipgloss.AdaptiveColor{Light: "#b08800", Dark: "#d29922"}
	blue := lipgloss.AdaptiveColor{Light: "#0366d6", Dark: "#58a6ff"}

	return &Styles{
		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight),

		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(subtle),

		Value: lipgloss.NewStyle().
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(subtle),

		StatusOK: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),

		StatusWarn: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),

		StatusRunning: lipgloss.NewStyle().
			Foreground(blue).
			Bold(true),

		TaskSelected: lipgloss.NewStyle().
			Background(highlight).
			Foreground(lipgloss.Color("#fff")).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),

		HelpText: lipgloss.NewStyle().
			Foreground(subtle),
	}
}

// tickMsg refreshes relative ages.
type tickMsg time.Time

// New creates a board model over snap.
func New(snap Snapshot) *Model {
	return &Model{
		width:       80,
		height:      24,
		activePanel: PanelQueue,
		snap:        snap,
		now:         time.Now(),
		styles:      newStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.EnterAltScreen,
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "right", "l":
		m.activePanel = (m.activePanel + 1) % panelCount
		return m, nil

	case "shift+tab", "left", "h":
		m.activePanel = (m.activePanel + panelCount - 1) % panelCount
		return m, nil

	case "up", "k":
		return m.handleUp(), nil

	case "down", "j":
		return m.handleDown(), nil

	case "home", "g":
		return m.handleHome(), nil

	case "end", "G":
		return m.handleEnd(), nil
	}

	return m, nil
}

func (m Model) handleUp() Model {
	switch m.activePanel {
	case PanelQueue:
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case PanelMechanics:
		if m.mechScroll > 0 {
			m.mechScroll--
		}
	case PanelActivity:
		if m.activityScroll > 0 {
			m.activityScroll--
		}
	}
	return m
}

func (m Model) handleDown() Model {
	switch m.activePanel {
	case PanelQueue:
		if m.selectedTask < len(m.snap.Queue)-1 {
			m.selectedTask++
		}
	case PanelMechanics:
		if m.mechScroll < len(m.mechanicLines())-1 {
			m.mechScroll++
		}
	case PanelActivity:
		if m.activityScroll < len(m.snap.Activity)-1 {
			m.activityScroll++
		}
	}
	return m
}

func (m Model) handleHome() Model {
	switch m.activePanel {
	case PanelQueue:
		m.selectedTask = 0
	case PanelMechanics:
		m.mechScroll = 0
	case PanelActivity:
		m.activityScroll = 0
	}
	return m
}

func (m Model) handleEnd() Model {
	switch m.activePanel {
	case PanelQueue:
		if len(m.snap.Queue) > 0 {
			m.selectedTask = len(m.snap.Queue) - 1
		}
	case PanelMechanics:
		if n := len(m.mechanicLines()); n > 0 {
			m.mechScroll = n - 1
		}
	case PanelActivity:
		if len(m.snap.Activity) > 0 {
			m.activityScroll = len(m.snap.Activity) - 1
		}
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	topHeight := m.height / 2
	bottomHeight := m.height - topHeight - 3 // help bar and padding
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	queuePanel := m.renderQueuePanel(leftWidth-2, topHeight-2)
	mechPanel := m.renderMechanicPanel(topHeight - 2)
	activityPanel := m.renderActivityPanel(m.width-2, bottomHeight-2)

	queueBorder := m.getBorder(PanelQueue).Width(leftWidth - 2).Height(topHeight - 2)
	mechBorder := m.getBorder(PanelMechanics).Width(rightWidth - 2).Height(topHeight - 2)
	activityBorder := m.getBorder(PanelActivity).Width(m.width - 2).Height(bottomHeight - 2)

	topRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		queueBorder.Render(queuePanel),
		mechBorder.Render(mechPanel),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		topRow,
		activityBorder.Render(activityPanel),
		m.renderHelpBar(),
	)
}

func (m Model) getBorder(panel Panel) lipgloss.Style {
	if m.activePanel == panel {
		return m.styles.ActiveBorder
	}
	return m.styles.InactiveBorder
}

func (m Model) renderHeader() string {
	header := m.styles.Highlight.Render(m.snap.Shop)
	if m.snap.Manager != "" {
		header += m.styles.Muted.Render("  manager: " + m.snap.Manager)
	}
	if m.snap.SlotLine != "" {
		header += m.styles.Muted.Render("  " + m.snap.SlotLine)
	}
	return " " + header
}

func (m Model) age(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, m.now, "ago", "from now")
}

func visible(height int) int {
	if n := height - 4; n > 0 {
		return n
	}
	return 1
}

func (m Model) renderQueuePanel(width, height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Queue (%d pending)", len(m.snap.Queue))))
	b.WriteString("\n\n")

	if len(m.snap.Queue) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks waiting"))
		return b.String()
	}

	rows := visible(height)
	if m.selectedTask < m.taskScroll {
		m.taskScroll = m.selectedTask
	} else if m.selectedTask >= m.taskScroll+rows {
		m.taskScroll = m.selectedTask - rows + 1
	}

	for i := m.taskScroll; i < len(m.snap.Queue) && i < m.taskScroll+rows; i++ {
		q := m.snap.Queue[i]
		line := fmt.Sprintf("%2d. [p%d] %s", i+1, q.Priority, truncate(q.Description, width-24))
		if i == m.selectedTask && m.activePanel == PanelQueue {
			line = m.styles.TaskSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString(m.styles.Muted.Render(" " + q.Vehicle + ", " + m.age(q.Created)))
		b.WriteString("\n")
	}

	if len(m.snap.Queue) > rows {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" [%d/%d]", m.selectedTask+1, len(m.snap.Queue))))
	}
	return b.String()
}

// mechanicLines flattens mechanics and their tasks into display lines.
func (m Model) mechanicLines() []string {
	var lines []string
	for _, mech := range m.snap.Mechanics {
		head := fmt.Sprintf("%s %s",
			m.styles.Value.Render(fmt.Sprintf("#%d %s", mech.ID, mech.Name)),
			m.styles.Muted.Render(fmt.Sprintf("(%d open / %d)", mech.Open, len(mech.Tasks))),
		)
		lines = append(lines, head)
		for _, t := range mech.Tasks {
			icon := m.styles.StatusWarn.Render("o")
			if t.Done {
				icon = m.styles.StatusOK.Render("*")
			}
			lines = append(lines, fmt.Sprintf("   %s %s [p%d]", icon, t.Description, t.Priority))
		}
	}
	return lines
}

func (m Model) renderMechanicPanel(height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Mechanics"))
	b.WriteString("\n\n")

	lines := m.mechanicLines()
	if len(lines) == 0 {
		b.WriteString(m.styles.Muted.Render("No mechanics on staff"))
		return b.String()
	}

	rows := visible(height)
	start := m.mechScroll
	if start+rows > len(lines) {
		start = max(len(lines)-rows, 0)
	}
	for i := start; i < len(lines) && i < start+rows; i++ {
		b.WriteString(lines[i])
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) kindStyle(k journal.Kind) lipgloss.Style {
	switch k {
	case journal.KindTaskCompleted:
		return m.styles.StatusOK
	case journal.KindTaskAssigned:
		return m.styles.StatusRunning
	case journal.KindTaskCreated:
		return m.styles.Highlight
	default:
		return m.styles.Label
	}
}

// renderActivityPanel shows events newest first.
func (m Model) renderActivityPanel(width, height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Activity"))
	b.WriteString("\n\n")

	events := m.snap.Activity
	if len(events) == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing has happened yet"))
		return b.String()
	}

	rows := visible(height)
	start := m.activityScroll
	if start+rows > len(events) {
		start = max(len(events)-rows, 0)
	}
	for i := start; i < len(events) && i < start+rows; i++ {
		e := events[len(events)-1-i]
		line := fmt.Sprintf("%s %s %s",
			m.styles.Muted.Render(fmt.Sprintf("%-14s", m.age(e.Time))),
			m.kindStyle(e.Kind).Render(fmt.Sprintf("%-20s", e.Kind)),
			truncate(e.Detail, width-40),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(events) > rows {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" [%d/%d]", start+1, len(events))))
	}
	return b.String()
}

func (m Model) renderHelpBar() string {
	helpItems := []struct {
		key  string
		desc string
	}{
		{"tab", "switch panel"},
		{"j/k", "up/down"},
		{"q", "back to menu"},
	}

	var parts []string
	for _, item := range helpItems {
		parts = append(parts, fmt.Sprintf("%s %s",
			m.styles.HelpKey.Render(item.key),
			m.styles.HelpText.Render(item.desc),
		))
	}

	return "  " + strings.Join(parts, "  |  ")
}

func truncate(s string, n int) string {
	if n <= 3 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// Run shows the board for shop and blocks until the user quits.
func Run(shop *workshop.Shop) error {
	p := tea.NewProgram(New(SnapshotOf(shop)), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
