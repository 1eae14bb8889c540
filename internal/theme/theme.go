package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lwang/apiforge/internal/status"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle renders de-emphasized rows, e.g. read notifications.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// namedColor resolves the color names used by status.Badge.
func namedColor(name string) lipgloss.AdaptiveColor {
	switch name {
	case "blue":
		return ColorBlue
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "red":
		return ColorRed
	case "orange":
		return ColorOrange
	case "magenta":
		return ColorMagenta
	default:
		return ColorGray
	}
}

// BadgeStyle returns the style for a status badge pill.
func BadgeStyle(b status.Badge) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(namedColor(b.Color))
}

// CategoryStyle returns a color-coded style for a status category.
func CategoryStyle(c status.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch c {
	case status.CategoryPending:
		return base.Foreground(ColorBlue)
	case status.CategoryInProgress:
		return base.Foreground(ColorYellow)
	case status.CategoryCompleted:
		return base.Foreground(ColorGreen)
	case status.CategoryFailed:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// IconGlyph maps a status icon to its terminal glyph.
func IconGlyph(i status.Icon) string {
	switch i {
	case status.IconActivity:
		return "◐"
	case status.IconCheck:
		return "✓"
	case status.IconAlert:
		return "✗"
	default:
		return "○"
	}
}

// ToastStyle returns a style for a feedback toast of the given level
// ("info", "success", "warning", "error").
func ToastStyle(level string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch level {
	case "success":
		return base.Foreground(ColorGreen)
	case "warning":
		return base.Foreground(ColorOrange)
	case "error":
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorBlue)
	}
}

// ProgressBar renders a fixed-width textual progress bar for the given
// percentage.
func ProgressBar(percent, width int) string {
	if width < 4 {
		width = 4
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := width * percent / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	color := ColorYellow
	switch {
	case percent >= 100:
		color = ColorGreen
	case percent == 0:
		color = ColorGray
	}

	return lipgloss.NewStyle().Foreground(color).Render(bar)
}
