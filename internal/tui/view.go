package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/cases"

	"github.com/jask/jaskweather/internal/domain"
	"github.com/jask/jaskweather/internal/viewmodel"
)

func (m *Model) View() string {
	width := max(30, m.width)
	parts := []string{
		titleStyle.Render("jaskweather"),
		m.renderSearch(width),
		m.renderBody(width),
	}
	if m.snackbar != "" {
		parts = append(parts, snackbarStyle.Render(ansi.Truncate(m.snackbar, width-4, "…")))
	}
	parts = append(parts, m.renderFooter(width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderSearch(width int) string {
	style := searchStyle
	if m.input.Focused() {
		style = searchFocusStyle
	}
	return style.Width(width - 2).Render(m.input.View())
}

func (m *Model) renderBody(width int) string {
	switch s := m.state.(type) {
	case viewmodel.Loading:
		return m.spinner.View() + mutedStyle.Render(" Loading…")
	case viewmodel.NoCachedCity:
		return mutedStyle.Render("No city yet. Press / to search.")
	case viewmodel.Failure:
		return errorStyle.Render(ansi.Truncate(viewmodel.Message(s.Reason), width, "…"))
	case viewmodel.ShowWeather:
		return m.renderCard(s.Weather, s.IsRefreshing, width)
	}
	return ""
}

func (m *Model) renderCard(w domain.Weather, refreshing bool, width int) string {
	title := cases.Title(m.lang)

	header := cityStyle.Render(w.CityName)
	if refreshing {
		header += "  " + m.spinner.View() + mutedStyle.Render(" refreshing")
	}
	condition := lipgloss.NewStyle().Foreground(conditionColor(w.Condition)).
		Render(title.String(w.Description))

	rows := []string{
		header,
		tempStyle.Render(formatTemp(w.Temperature, m.units)) + "  " + condition,
		"",
		row("Humidity", fmt.Sprintf("%d%%", w.Humidity)),
		row("Wind", formatWind(w.WindSpeed, m.units)),
	}
	if !w.ObservedAt.IsZero() {
		rows = append(rows, row("Observed", w.ObservedAt.Local().Format("Mon 15:04")))
	}
	for i, r := range rows {
		rows[i] = ansi.Truncate(r, width-6, "…")
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderFooter(width int) string {
	bindings := m.keys.help(m.input.Focused())
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return footerStyle.Width(width).Render(ansi.Truncate(strings.Join(hints, " · "), width-4, ""))
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-9s", label)) + valueStyle.Render(value)
}

func formatTemp(t float64, units string) string {
	switch units {
	case "imperial":
		return fmt.Sprintf("%.0f°F", t)
	case "standard":
		return fmt.Sprintf("%.0fK", t)
	default:
		return fmt.Sprintf("%.0f°C", t)
	}
}

func formatWind(speed float64, units string) string {
	if units == "imperial" {
		return fmt.Sprintf("%.1f mph", speed)
	}
	return fmt.Sprintf("%.1f m/s", speed)
}
