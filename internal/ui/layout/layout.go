package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingoflip/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30

	// meterCells is the width of the header's deck meter bar.
	meterCells = 10
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func (h KeyHint) render() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The cards need more room.\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// DeckMeter is how far through the current deck a review has got.
type DeckMeter struct {
	Cleared int
	Total   int
}

// Render draws a short bar of cleared cards followed by "cleared/total".
func (m DeckMeter) Render() string {
	filled := 0
	if m.Total > 0 {
		filled = min(max(m.Cleared*meterCells/m.Total, 0), meterCells)
	}
	bar := lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", meterCells-filled))
	count := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %d/%d", m.Cleared, m.Total))
	return bar + count
}

// Header is the content of the top bar. Status and Meter are optional.
type Header struct {
	Title  string
	Status string
	Meter  *DeckMeter
}

// RenderHeader draws the app name on the left, the title centred and the
// status plus deck meter on the right. The meter is dropped first when the
// bar runs out of room.
func RenderHeader(h Header, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  LingoFlip")
	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(h.Title)

	inner := max(width-4, 0)
	right := headerRight(h, false)
	if h.Meter != nil && lipgloss.Width(left)+lipgloss.Width(center)+lipgloss.Width(right)+2 > inner {
		right = headerRight(h, true)
	}

	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	if lw+leftGap+cw+1+rw > inner {
		// Slide the title left so a long status keeps one line.
		leftGap = max(inner-lw-cw-rw-1, 1)
	}
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return box(content, width)
}

func headerRight(h Header, dropMeter bool) string {
	parts := make([]string, 0, 2)
	if h.Status != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Render(h.Status))
	}
	if h.Meter != nil && !dropMeter {
		parts = append(parts, h.Meter.Render())
	}
	return strings.Join(parts, "  ")
}

// RenderFooter lays out key hints left to right. Hints that do not fit in
// width are left off the end.
func RenderFooter(hints []KeyHint, width int) string {
	const sep = "   "
	room := max(width-6, 0)

	var b strings.Builder
	b.WriteString("  ")
	used := 0
	for i, h := range hints {
		part := h.render()
		need := lipgloss.Width(part)
		if i > 0 {
			need += len(sep)
		}
		if used+need > room {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
		used += need
	}
	return box(b.String(), width)
}

func box(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, sizing content to fill
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)
	return header + "\n" + styledContent + "\n" + footer
}
