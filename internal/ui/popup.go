package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/dotview/internal/format/table"
	"github.com/atomicstack/dotview/internal/logging"
	"github.com/atomicstack/dotview/internal/ui/command"
	uistate "github.com/atomicstack/dotview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# dotview

## Navigate

| key | action |
|-----|--------|
| j / k, ↓ / ↑ | move in the focused column |
| h / l, ← / → | focus predecessors, current or successors |
| g / G, pgup / pgdown | jump in the focused column |
| enter | go to the focused entry, or to the current match |
| n / N | next / previous match |
| / , r | fuzzy / regex search |
| : | command |
| 0-9 | open the neighborhood of that depth |
| tab / shift+tab | next / previous tab |
| c | close tab |
| e / x | export tab / open export in the viewer |
| y | copy the focused node id |
| s | subgraph tree |
| q | quit |

## Search and command input

Typing updates the matches. tab completes, ↑ / ↓ cycle matches,
enter jumps (or runs the command), esc cancels.

## Commands

%s

## Subgraph tree

j / k move, h / l collapse or expand, space toggles, enter opens the
cluster as a tab, esc closes.
`

func (m *Model) openPopup(kind PopupKind) {
	m.popupKind = kind
	m.setMode(ModePopup)
}

func (m *Model) closePopup() {
	m.setMode(ModeNavigate)
}

func (m *Model) handleHelpKey(key string) (tea.Cmd, error) {
	switch key {
	case "ctrl+c":
		return tea.Quit, nil
	case "esc", "q":
		m.closePopup()
	}
	return nil, nil
}

func (m *Model) handleTreeKey(key string) (tea.Cmd, error) {
	tree := m.current().Tree()
	switch key {
	case "ctrl+c":
		return tea.Quit, nil
	case "esc", "q":
		m.closePopup()
	case "j", "down":
		tree.MoveDown()
	case "k", "up":
		tree.MoveUp()
	case "h", "left":
		tree.Collapse()
	case "l", "right":
		tree.Expand()
	case " ", "space":
		tree.Toggle()
	case "enter":
		if err := m.openSubgraph(); err != nil {
			return nil, err
		}
		m.closePopup()
	default:
		return nil, &NoKeybindingError{Mode: m.mode, Key: key}
	}
	return nil, nil
}

// helpText renders the help markdown for the current width, caching the
// result until the width changes.
func (m *Model) helpText(width int) string {
	if m.help != "" && m.helpWidth == width {
		return m.help
	}
	usage := command.Usage()
	for i, line := range usage {
		usage[i] = "- `" + line + "`"
	}
	source := fmt.Sprintf(helpMarkdown, strings.Join(usage, "\n"))
	wrap := width
	if wrap <= 0 {
		wrap = 80
	}
	rendered := source
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		if out, rerr := renderer.Render(source); rerr == nil {
			rendered = strings.Trim(out, "\n")
		} else {
			err = rerr
		}
	}
	if err != nil {
		logging.Error(fmt.Errorf("render help: %w", err))
	}
	m.help = rendered
	m.helpWidth = width
	return m.help
}

// treeLines lays out the cluster tree with its statistics columns.
func treeLines(tree *uistate.Tree) []styledLine {
	rows := tree.Rows()
	if len(rows) == 0 {
		return []styledLine{{text: "(no subgraphs)", style: styles.Info}}
	}
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, []string{"cluster", "subgraphs", "nodes", "edges"})
	for _, row := range rows {
		item := tree.Item(row.Item)
		marker := "  "
		if len(item.Children) > 0 {
			marker = "▸ "
			if item.Expanded {
				marker = "▾ "
			}
		}
		stats := item.Stats
		cells = append(cells, []string{
			row.Prefix + marker + item.Label,
			strconv.Itoa(stats.Subgraphs),
			strconv.Itoa(stats.Nodes),
			strconv.Itoa(stats.Edges),
		})
	}
	formatted := table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight})
	lines := make([]styledLine, 0, len(formatted))
	lines = append(lines, styledLine{text: "  " + formatted[0], style: styles.ColumnTitle})
	for i, text := range formatted[1:] {
		if rows[i].Selected {
			lines = append(lines, styledLine{
				text:          "▌ " + text,
				style:         styles.SelectedItem,
				prefixStyle:   styles.SelectedItemIndicator,
				highlightFrom: 1,
			})
			continue
		}
		lines = append(lines, styledLine{
			text:          "▌ " + text,
			style:         styles.Item,
			prefixStyle:   styles.ItemIndicator,
			highlightFrom: 1,
		})
	}
	return lines
}
