package ui

import (
	"fmt"
	"strings"

	uistate "github.com/atomicstack/dotview/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultLayoutWidth = 80
	sideColumnFraction = 0.3 // share of the width given to each adjacency column
	bottomBarRows      = 2   // status line + prompt
	topBarRows         = 2   // tab bar + header
)

var columnLabels = map[uistate.Focus]string{
	uistate.FocusPrevs:   "predecessors",
	uistate.FocusCurrent: "nodes",
	uistate.FocusNexts:   "successors",
}

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.layoutWidth()
	lines := []styledLine{
		{text: m.tabBar(), raw: true},
		{text: m.header(), style: styles.Header},
	}
	lines = applyWidth(lines, width)
	out := renderLines(lines) + "\n"

	if m.mode == ModePopup {
		out += m.renderPopup(width, m.bodyHeight())
	} else {
		out += m.renderColumns(width, m.bodyHeight())
	}

	var tail []styledLine
	if info := m.currentInfo(); info != "" {
		tail = append(tail, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		tail = append(tail, styledLine{}, styledLine{text: m.footerText(), style: styles.Footer})
	}
	tail = append(tail, m.statusLine(), styledLine{text: m.filterPrompt(), raw: true})
	return out + "\n" + renderLines(applyWidth(tail, width))
}

func (m *Model) layoutWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultLayoutWidth
}

// bodyHeight is the number of rows left for the columns or the popup.
// Without a known terminal height every list is shown in full.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		if m.mode == ModePopup && m.popupKind == PopupHelp {
			return len(strings.Split(m.helpText(max(m.layoutWidth()-4, 1)), "\n")) + 3
		}
		view := m.current()
		rows := 1
		for _, focus := range []uistate.Focus{uistate.FocusPrevs, uistate.FocusCurrent, uistate.FocusNexts} {
			rows = max(rows, view.List(focus).Len())
		}
		if m.mode == ModePopup {
			rows = max(rows, len(view.Tree().Rows())+3) // title, column header, border
		}
		return rows + 1
	}
	used := topBarRows + bottomBarRows
	if m.currentInfo() != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	return max(m.height-used, 2)
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	return max(m.bodyHeight()-1, 1)
}

func (m *Model) tabBar() string {
	titles := m.tabs.Titles()
	parts := make([]string, len(titles))
	for i, title := range titles {
		label := fmt.Sprintf("%d %s", i+1, title)
		style := styles.Tab
		if i == m.tabs.Index() {
			style = styles.ActiveTab
		}
		parts[i] = renderStyle(style, label)
	}
	return strings.Join(parts, renderStyle(styles.TabBar, "│"))
}

func (m *Model) header() string {
	segments := m.headerSegments()
	return strings.Join(segments, headerSeparator)
}

func (m *Model) headerSegments() []string {
	view := m.current()
	segments := []string{view.Title}
	if center, ok := view.Center(); ok {
		segments = append(segments, "center "+center)
	}
	if id, ok := view.Selected(); ok {
		segments = append(segments, id)
	}
	return segments
}

func (m *Model) statusLine() styledLine {
	if m.errMsg != "" {
		return styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	view := m.current()
	q := view.Query()
	if q.Key == "" {
		return styledLine{}
	}
	matches := view.Matches()
	if len(matches) == 0 {
		return styledLine{text: fmt.Sprintf("No matches for %q", q.Key), style: styles.MatchStatus}
	}
	return styledLine{
		text:  fmt.Sprintf("match %d/%d", view.MatchIndex()+1, len(matches)),
		style: styles.MatchStatus,
	}
}

func (m *Model) footerText() string {
	switch m.mode {
	case ModeInput:
		return "enter accept  tab complete  ↑/↓ matches  esc cancel"
	case ModePopup:
		if m.popupKind == PopupHelp {
			return "esc close"
		}
		return "↑/↓ move  ←/→ fold  space toggle  enter open  esc close"
	default:
		return "h/l focus  j/k move  enter go  / search  : command  0-9 neighbors  ? help  q quit"
	}
}

// columnWidths splits the width into predecessor, node and successor
// columns.
func columnWidths(total int) [3]int {
	side := int(float64(total) * sideColumnFraction)
	return [3]int{side, total - 2*side, side}
}

func (m *Model) renderColumns(width, height int) string {
	view := m.current()
	widths := columnWidths(width)
	cols := make([]string, 0, 3)
	for i, focus := range []uistate.Focus{uistate.FocusPrevs, uistate.FocusCurrent, uistate.FocusNexts} {
		cols = append(cols, m.renderColumn(view, focus, widths[i], height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderColumn draws one list as exactly height rows of width columns.
func (m *Model) renderColumn(view *uistate.View, focus uistate.Focus, width, height int) string {
	list := view.List(focus)
	focused := focus == m.focus
	titleStyle := styles.ColumnTitle
	if focused {
		titleStyle = styles.FocusedColumnTitle
	}
	rows := make([]string, 0, height)
	rows = append(rows, fit(renderStyle(titleStyle, fmt.Sprintf("%s (%d)", columnLabels[focus], list.Len())), width))

	visible := height - 1
	list.EnsureCursorVisible(visible)
	if list.Len() == 0 {
		rows = append(rows, fit(renderStyle(styles.Dimmed, "  (none)"), width))
	}
	for i, id := range list.Visible(visible) {
		idx := list.ViewportOffset + i
		rows = append(rows, fit(m.itemLine(view, focus, id, idx == list.Cursor, focused, width), width))
	}
	for len(rows) < height {
		rows = append(rows, strings.Repeat(" ", width))
	}
	return strings.Join(rows[:height], "\n")
}

// itemLine renders a node id with its match highlight and, inside a
// neighborhood, its signed distance from the center.
func (m *Model) itemLine(view *uistate.View, focus uistate.Focus, id string, selected, focused bool, width int) string {
	base := styles.Item
	indicator := styles.ItemIndicator
	if selected {
		base = styles.SelectedItem
		if focused {
			indicator = styles.SelectedItemIndicator
		}
	}

	annotation := ""
	annotationStyle := styles.Vicinity
	if d, ok := view.Vicinity(id); ok {
		annotation = fmt.Sprintf(" %+d", d)
		if d == 0 {
			annotationStyle = styles.Center
		}
	}

	var positions []int
	if focus == uistate.FocusCurrent && view.Query().Key != "" {
		if h, ok := view.Highlight(id); ok {
			positions = h
		} else if !selected {
			base = styles.Dimmed
		}
	}

	// indicator, space, trailing gap
	label := truncateText(id, width-3-len([]rune(annotation)))
	text := renderStyle(indicator, "▌") + renderStyle(base, " ") +
		highlightRunes(label, positions, base, styles.MatchHighlight) +
		renderStyle(annotationStyle, annotation)
	if selected {
		if pad := width - 1 - lipgloss.Width(text); pad > 0 {
			text += renderStyle(base, strings.Repeat(" ", pad))
		}
	}
	return text
}

func (m *Model) renderPopup(width, height int) string {
	innerW := max(width-4, 1) // border + padding
	innerH := max(height-2, 1)
	var body []string
	title := "subgraphs"
	if m.popupKind == PopupHelp {
		title = "help"
		body = strings.Split(m.helpText(innerW), "\n")
	} else {
		lines := applyWidth(treeLines(m.current().Tree()), innerW)
		body = strings.Split(renderLines(lines), "\n")
	}
	body = append([]string{renderStyle(styles.PopupTitle, title)}, body...)
	if len(body) > innerH {
		body = body[:innerH]
	}
	for i := range body {
		body[i] = fit(body[i], innerW)
	}
	box := styles.Popup.Copy().Width(width - 2).Render(strings.Join(body, "\n"))
	rows := strings.Split(box, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows[:height], "\n")
}

func renderStyle(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// highlightRunes styles the runes at positions with mark layered over base
// and everything else with base.
func highlightRunes(text string, positions []int, base, mark *lipgloss.Style) string {
	if len(positions) == 0 || mark == nil {
		return renderStyle(base, text)
	}
	marked := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		marked[p] = struct{}{}
	}
	markStyle := mark.Copy()
	if base != nil {
		markStyle = markStyle.Inherit(*base)
	}
	runes := []rune(text)
	var b strings.Builder
	start := 0
	for i := 1; i <= len(runes); i++ {
		_, prev := marked[start]
		if i < len(runes) {
			if _, cur := marked[i]; cur == prev {
				continue
			}
		}
		segment := string(runes[start:i])
		if prev {
			b.WriteString(markStyle.Render(segment))
		} else {
			b.WriteString(renderStyle(base, segment))
		}
		start = i
	}
	return b.String()
}

// fit pads or truncates an already styled row to exactly width cells.
func fit(row string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(row)
	if w > width {
		row = truncate.StringWithTail(row, uint(max(width-1, 0)), "…")
		w = lipgloss.Width(row)
	}
	if w < width {
		row += strings.Repeat(" ", width-w)
	}
	return row
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			text = renderStyle(line.prefixStyle, string(runes[:line.highlightFrom])) +
				renderStyle(line.style, string(runes[line.highlightFrom:]))
		} else {
			text = renderStyle(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
