package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"seatpicker-cli/model"
)

var typePalette = []string{"6", "5", "4", "13", "14", "11"}

var (
	seatStyleAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatStyleSelected  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
	seatStyleReserved  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatStyleDisabled  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	seatStyleGap       = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
)

func (m appModel) renderSeatMap() string {
	rows := m.store.Rows()
	cols := m.store.Columns()
	seats := m.store.Seats()
	if len(seats) == 0 {
		return "No seat map data."
	}

	gaps := map[model.SeatIndex]bool{}
	for _, index := range m.store.Gaps() {
		gaps[index] = true
	}
	typeStyles := m.typeStyles()

	rowLabels := make([]string, rows)
	rowWidth := 2
	for r := range rowLabels {
		rowLabels[r] = m.store.RowLabel(r)
		rowWidth = max(rowWidth, len(rowLabels[r]))
	}
	cellWidth := 2
	if m.showSeatNumbers {
		for _, seat := range seats {
			cellWidth = max(cellWidth, len(seat.Label))
		}
	}

	var b strings.Builder
	gridWidth := cols*(cellWidth+1) - 1
	screenStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214"))
	screenBorderStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Background(lipgloss.Color("236"))

	screenBar := screenBarBlock(gridWidth, "SCREEN")
	indent := strings.Repeat(" ", rowWidth+1)
	b.WriteString(indent + screenBorderStyle.Render(screenBar.top) + "\n")
	b.WriteString(indent + screenStyle.Render(screenBar.mid) + "\n")
	b.WriteString(indent + screenBorderStyle.Render(screenBar.bot) + "\n")
	b.WriteString(indent + hint("Front / Screen") + "\n\n")

	for r := 0; r < rows; r++ {
		b.WriteString(fmt.Sprintf("%*s ", rowWidth, rowLabels[r]))
		for c := 0; c < cols; c++ {
			seat := seats[r*cols+c]
			text := seatToken(seat.State)
			if m.showSeatNumbers && seat.Label != "" {
				text = seat.Label
			}
			style := seatStyle(seat, typeStyles, m.highlightGaps && gaps[seat.Index])
			if seat.Index == m.cursor {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(padCell(text, cellWidth)))
			if c < cols-1 {
				b.WriteString(" ")
			}
		}
		b.WriteString(fmt.Sprintf(" %*s\n", rowWidth, rowLabels[r]))
	}

	b.WriteString("\n")
	b.WriteString(m.legend(typeStyles))
	counts := m.store.Counts()
	b.WriteString("\n")
	b.WriteString(hint(fmt.Sprintf("Available: %d • Selected: %d • Reserved: %d • Disabled: %d • Gaps: %d • Total: %d",
		counts[model.SeatAvailable],
		counts[model.SeatSelected],
		counts[model.SeatReserved],
		counts[model.SeatDisabled],
		len(gaps),
		len(seats),
	)))
	return b.String()
}

// typeStyles colours available seats by type. The default type keeps the
// plain available colour.
func (m appModel) typeStyles() map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style)
	next := 0
	for _, t := range m.store.Types() {
		if t.Key == model.DefaultTypeKey {
			styles[t.Key] = seatStyleAvailable
			continue
		}
		styles[t.Key] = lipgloss.NewStyle().Foreground(lipgloss.Color(typePalette[next%len(typePalette)]))
		next++
	}
	return styles
}

func (m appModel) legend(typeStyles map[string]lipgloss.Style) string {
	var parts []string
	for _, t := range m.store.Types() {
		name := t.Name
		if name == "" {
			name = t.Key
		}
		parts = append(parts, typeStyles[t.Key].Render("[]")+" "+name+" "+model.FormatPrice(m.currency(), t.Price))
	}
	states := "** selected • XX reserved • ## disabled"
	if m.highlightGaps {
		states += " • " + seatStyleGap.Render("[]") + " gap"
	}
	return strings.Join(parts, "  ") + "\n" + hint("Legend: "+states)
}

func seatStyle(seat model.SeatRecord, typeStyles map[string]lipgloss.Style, gap bool) lipgloss.Style {
	switch seat.State {
	case model.SeatSelected:
		return seatStyleSelected
	case model.SeatReserved:
		return seatStyleReserved
	case model.SeatDisabled:
		return seatStyleDisabled
	}
	if gap {
		return seatStyleGap
	}
	if style, ok := typeStyles[seat.Type]; ok {
		return style
	}
	return seatStyleAvailable
}

func seatToken(state model.SeatState) string {
	switch state {
	case model.SeatAvailable:
		return "[]"
	case model.SeatSelected:
		return "**"
	case model.SeatReserved:
		return "XX"
	case model.SeatDisabled:
		return "##"
	default:
		return "  "
	}
}

func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if text == "" {
		return strings.Repeat(" ", width)
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	left := padding / 2
	right := padding - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

type screenBlock struct {
	top string
	mid string
	bot string
}

func screenBarBlock(width int, label string) screenBlock {
	if width < len(label)+4 {
		width = len(label) + 4
	}
	if width < 10 {
		width = 10
	}

	border := "╭" + strings.Repeat("─", width-2) + "╮"
	bottom := "╰" + strings.Repeat("─", width-2) + "╯"

	labelText := " " + label + " "
	padding := width - len(labelText) - 2
	left := padding / 2
	right := padding - left
	mid := "│" + strings.Repeat(" ", left) + labelText + strings.Repeat(" ", right) + "│"
	return screenBlock{top: border, mid: mid, bot: bottom}
}
