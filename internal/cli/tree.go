package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pipgraph/pkg/depgraph"
)

// List styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeVersionStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// treeRow is one visible line of the browser: a package at a depth, with the
// path that reached it. Paths key the expansion state so the same package can
// be open under one parent and closed under another.
type treeRow struct {
	id       string
	path     string
	depth    int
	children int
	expanded bool
}

// TreeModel is the bubbletea model for the interactive dependency browser.
type TreeModel struct {
	Graph    *depgraph.Graph
	Expanded map[string]bool
	Cursor   int
	Height   int
	Offset   int
}

// NewTreeModel creates a browser over the given graph with roots collapsed.
func NewTreeModel(g *depgraph.Graph) TreeModel {
	return TreeModel{
		Graph:    g,
		Expanded: make(map[string]bool),
		Height:   20,
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	rows := m.rows()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ", "l", "right":
			if m.Cursor < len(rows) {
				row := rows[m.Cursor]
				if row.children > 0 {
					m.Expanded[row.path] = !m.Expanded[row.path]
				}
			}
			m.clampCursor()
		case "h", "left":
			if m.Cursor < len(rows) {
				m.Expanded[rows[m.Cursor].path] = false
			}
			m.clampCursor()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// clampCursor keeps the cursor and viewport inside the row list after a
// collapse shrinks it, such as closing a subtree the cursor was deep inside.
func (m *TreeModel) clampCursor() {
	n := len(m.rows())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Offset > m.Cursor {
		m.Offset = m.Cursor
	}
}

func (m TreeModel) View() string {
	rows := m.rows()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Dependency Tree"))
	b.WriteString("\n")
	b.WriteString(treeVersionStyle.Render("↑/↓ navigate  ⏎ expand/collapse  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(rows) {
		end = len(rows)
	}
	for i := m.Offset; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.Cursor))
		b.WriteString("\n")
	}

	if len(rows) == 0 {
		b.WriteString(treeVersionStyle.Render("  (no packages)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m TreeModel) renderRow(row treeRow, selected bool) string {
	marker := "·"
	if row.children > 0 {
		marker = "▸"
		if row.expanded {
			marker = "▾"
		}
	}

	n := m.Graph.Node(row.id)
	label := fmt.Sprintf("%s%s %s", strings.Repeat("  ", row.depth), marker, n.Name)
	if selected {
		label = treeSelectedStyle.Render(label)
	} else {
		label = treeNormalStyle.Render(label)
	}
	if n.Version != "" {
		label += " " + treeVersionStyle.Render(n.Version)
	}
	return label
}

// rows flattens the graph into the currently visible lines, walking roots
// depth-first and descending only into expanded paths. A package already on
// the current path is shown but never descended into, so requirement cycles
// cannot loop the browser.
func (m TreeModel) rows() []treeRow {
	var out []treeRow
	onPath := make(map[string]bool)

	var walk func(id, path string, depth int)
	walk = func(id, path string, depth int) {
		children := m.Graph.Children(id)
		expanded := m.Expanded[path] && !onPath[id]
		out = append(out, treeRow{
			id:       id,
			path:     path,
			depth:    depth,
			children: len(children),
			expanded: expanded,
		})
		if !expanded {
			return
		}
		onPath[id] = true
		for _, child := range children {
			walk(child, path+"/"+child, depth+1)
		}
		delete(onPath, id)
	}

	for _, root := range m.Graph.Roots() {
		walk(root.ID, root.ID, 0)
	}
	return out
}

// treeCommand creates the tree command: browse the dependency tree in the
// terminal with expandable nodes.
func (c *CLI) treeCommand() *cobra.Command {
	var opts captureOpts

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Browse the dependency tree interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := c.capture(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewTreeModel(snap.Graph))
			_, err = p.Run()
			return err
		},
	}

	addCaptureFlags(cmd, &opts)
	return cmd
}
