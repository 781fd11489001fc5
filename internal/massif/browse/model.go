// Package browse implements an interactive terminal browser for a parsed
// heap profile: a snapshot list on the left, and the selected snapshot's
// heap tree — expandable node by node — on the right.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/massifglom/internal/massif/model"
	"github.com/mabhi256/massifglom/utils"
)

// FocusArea is which pane currently receives up/down navigation.
type FocusArea int

const (
	FocusSnapshots FocusArea = iota
	FocusTree
)

func (f FocusArea) String() string {
	switch f {
	case FocusSnapshots:
		return "Snapshots"
	case FocusTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// treeRow is one line of a flattened, expansion-aware view of a heap tree:
// the node it names plus the path of child indices that reaches it, used
// as a stable expand/collapse key.
type treeRow struct {
	node  *model.HeapNode
	path  string
	depth uint32
}

// Model is the bubbletea model driving the browse command.
type Model struct {
	profile *model.Profile

	focus         FocusArea
	snapshotIndex int
	treeIndex     int
	expanded      map[string]bool

	tree viewport.Model

	width, height int
}

func initialModel(profile *model.Profile) *Model {
	return &Model{
		profile:  profile,
		focus:    FocusSnapshots,
		expanded: map[string]bool{"": true}, // root starts expanded
		tree:     viewport.New(0, 0),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.Width = m.width - m.width/3 - 4
		m.tree.Height = m.height - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "tab", "left", "right", "h", "l":
			m.focus = utils.GetNextEnum(m.focus, FocusTree)

		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			if m.focus == FocusTree {
				m.toggleSelectedNode()
			}
		}

	case tea.MouseMsg:
		if m.focus == FocusTree {
			var cmd tea.Cmd
			m.tree, cmd = m.tree.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case FocusSnapshots:
		n := len(m.profile.Snapshots)
		if n == 0 {
			return
		}
		m.snapshotIndex = clamp(m.snapshotIndex+delta, 0, n-1)
		m.treeIndex = 0
	case FocusTree:
		rows := m.currentTreeRows()
		if len(rows) == 0 {
			return
		}
		m.treeIndex = clamp(m.treeIndex+delta, 0, len(rows)-1)
	}
}

func (m *Model) toggleSelectedNode() {
	rows := m.currentTreeRows()
	if m.treeIndex >= len(rows) {
		return
	}
	row := rows[m.treeIndex]
	if len(row.node.Children) == 0 {
		return
	}
	m.expanded[row.path] = !m.expanded[row.path]
}

func (m *Model) currentSnapshot() *model.Snapshot {
	if m.snapshotIndex >= len(m.profile.Snapshots) {
		return nil
	}
	return m.profile.Snapshots[m.snapshotIndex]
}

// currentTreeRows flattens the selected snapshot's heap tree in pre-order,
// descending into a node only when its path has been marked expanded.
func (m *Model) currentTreeRows() []treeRow {
	snap := m.currentSnapshot()
	if snap == nil || snap.Tree == nil {
		return nil
	}
	var rows []treeRow
	m.flatten(snap.Tree, "", &rows)
	return rows
}

func (m *Model) flatten(n *model.HeapNode, path string, rows *[]treeRow) {
	*rows = append(*rows, treeRow{node: n, path: path, depth: n.Depth})
	if !m.expanded[path] {
		return
	}
	for i, c := range n.Children {
		childPath := fmt.Sprintf("%s.%d", path, i)
		m.flatten(c, childPath, rows)
	}
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	helpBar := utils.HelpBarStyle.Render(m.helpText())

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(helpBar)
	leftWidth := m.width / 3

	left := m.renderSnapshotList(leftWidth, bodyHeight)
	right := m.renderTree(m.width-leftWidth, bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, helpBar)
}

func (m *Model) renderHeader() string {
	desc := m.profile.Description
	if desc == "" {
		desc = "(no description)"
	}
	return utils.HeaderStyle.Width(m.width).Render(
		fmt.Sprintf("%s — %s  [%d snapshots]", desc, m.profile.Command, len(m.profile.Snapshots)),
	)
}

func (m *Model) helpText() string {
	return "↑/↓ move  tab/←/→ switch pane  enter toggle node  q quit"
}

func (m *Model) renderSnapshotList(width, height int) string {
	var b strings.Builder

	style := utils.TabInactiveStyle
	title := "Snapshots"
	if m.focus == FocusSnapshots {
		style = utils.TabActiveStyle
	}
	b.WriteString(style.Render(title))
	b.WriteString("\n")

	for i, s := range m.profile.Snapshots {
		if i >= height-2 {
			break
		}
		total := s.TotalBytes()
		share := 0.0
		if m.profile.MaxTotalBytes > 0 {
			share = float64(total) / float64(m.profile.MaxTotalBytes)
		}
		line := fmt.Sprintf("%3d %-8s %s", s.Index, utils.MemorySize(total).String(), s.TreeKind)
		rowStyle := utils.GetShareStyle(share)
		if i == m.snapshotIndex {
			rowStyle = rowStyle.Bold(true).Background(lipgloss.Color("#1a1a1a"))
		}
		b.WriteString(rowStyle.Render(line))
		b.WriteString("\n")
	}

	return utils.BoxStyle.Width(width - 4).Height(height - 2).Render(b.String())
}

func (m *Model) renderTree(width, height int) string {
	style := utils.TabInactiveStyle
	if m.focus == FocusTree {
		style = utils.TabActiveStyle
	}
	title := style.Render("Heap Tree")

	rows := m.currentTreeRows()
	if rows == nil {
		m.tree.SetContent(utils.MutedStyle.Render("(no tree for this snapshot)"))
	} else {
		var b strings.Builder
		for i, row := range rows {
			indent := strings.Repeat("  ", int(row.depth))
			marker := " "
			if len(row.node.Children) > 0 {
				if m.expanded[row.path] {
					marker = "▾"
				} else {
					marker = "▸"
				}
			}

			share := 0.0
			if m.profile.MaxTotalBytes > 0 {
				share = float64(row.node.TotalBytes) / float64(m.profile.MaxTotalBytes)
			}
			label := utils.TruncateString(utils.SanitizeString(row.node.Label), max(10, width-int(row.depth)*2-24))
			line := fmt.Sprintf("%s%s %9s %s", indent, marker, utils.MemorySize(row.node.TotalBytes).String(), label)

			rowStyle := utils.GetShareStyle(share)
			if i == m.treeIndex {
				rowStyle = rowStyle.Bold(true).Background(lipgloss.Color("#1a1a1a"))
			}
			b.WriteString(rowStyle.Render(line))
			if i < len(rows)-1 {
				b.WriteString("\n")
			}
		}
		m.tree.SetContent(b.String())
		m.syncTreeScroll(len(rows))
	}

	m.tree.Width = width - 4
	m.tree.Height = height - 2

	return utils.BoxStyle.Width(width-4).Height(height-2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, m.tree.View()),
	)
}

// syncTreeScroll keeps the selected row within the viewport by nudging its
// vertical offset, rather than recentering on every keypress.
func (m *Model) syncTreeScroll(rowCount int) {
	if rowCount == 0 {
		return
	}
	if m.treeIndex < m.tree.YOffset {
		m.tree.SetYOffset(m.treeIndex)
	} else if m.treeIndex >= m.tree.YOffset+m.tree.Height {
		m.tree.SetYOffset(m.treeIndex - m.tree.Height + 1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Start launches the interactive browser for profile, blocking until the
// user quits.
func Start(profile *model.Profile) error {
	m := initialModel(profile)

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := program.Run()
	return err
}
