package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the weather card uses.
// https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay2 lipgloss.Color = "#9399b2"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorBrand = colorPink
	colorFocus = colorLavender
	colorError = colorRed
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface0).
			Padding(1, 2)

	cityStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	tempStyle  = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	errorStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	searchStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorSurface0)
	searchFocusStyle = searchStyle.BorderForeground(colorFocus)

	snackbarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)
)

// conditionColor tints the condition line by OpenWeatherMap group.
func conditionColor(condition string) lipgloss.Color {
	switch condition {
	case "Clear":
		return colorYellow
	case "Clouds":
		return colorOverlay2
	case "Rain", "Drizzle":
		return colorBlue
	case "Thunderstorm":
		return colorMauve
	case "Snow":
		return colorSky
	default:
		return colorTeal
	}
}
