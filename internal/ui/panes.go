package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/view"
)

var paneTitles = map[models.Panel]string{
	models.PanelCurrent:    "CURRENT WEATHER",
	models.PanelHistorical: "PAST 7 DAYS",
	models.PanelMarine:     "MARINE CONDITIONS",
}

// renderPane wraps a panel body in a titled box for the global layout
func renderPane(p models.Panel, body string) string {
	return paneStyle.Render(sectionHeaderStyle.Render(paneTitles[p]) + "\n" + body)
}

// renderCurrent renders the current conditions card body
func (m Model) renderCurrent() string {
	c := m.state.Current

	lines := []string{
		valueStyle.Bold(true).Render(c.Location),
		bigValueStyle.Render(c.Temperature+"°C") + "  " + valueStyle.Render(c.Condition),
		labelStyle.Render("Humidity: ") + valueStyle.Render(c.Humidity),
		labelStyle.Render("Wind: ") + valueStyle.Render(c.WindSpeed),
		labelStyle.Render("Pressure: ") + valueStyle.Render(c.Pressure),
	}
	return strings.Join(lines, "\n")
}

// renderHistorical renders one line per day, oldest first
func (m Model) renderHistorical() string {
	h := m.state.Historical
	if len(h.Rows) == 0 {
		return mutedStyle.Render(h.EmptyText)
	}

	var lines []string
	for _, r := range h.Rows {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			labelStyle.Render(fmt.Sprintf("%-6s", r.Label)),
			valueStyle.Render(fmt.Sprintf("%6s / %5s", celsius(r.MaxTemp), celsius(r.MinTemp))),
			mutedStyle.Render(r.Condition)))
	}
	return strings.Join(lines, "\n")
}

func celsius(v string) string {
	if v == view.NotAvailable {
		return v
	}
	return v + "°C"
}

// renderMarine renders the latest marine sample or the coastal hint
func (m Model) renderMarine() string {
	mv := m.state.Marine
	if mv.EmptyText != "" {
		return mutedStyle.Render(mv.EmptyText)
	}

	lines := []string{
		labelStyle.Render("Wave Height: ") + valueStyle.Render(mv.WaveHeight),
		labelStyle.Render("Sea Temperature: ") + valueStyle.Render(mv.SeaTemp),
		labelStyle.Render("Wind: ") + valueStyle.Render(mv.Wind),
	}
	return strings.Join(lines, "\n")
}

// renderCard renders a card in the per-card layout: its inline search box
// when active, its data once loaded, and any error scoped to it
func (m Model) renderCard(key int, p models.Panel) string {
	active := m.state.ActivePanel == p

	title := titleStyle.Render(fmt.Sprintf("[%d] %s", key, paneTitles[p]))
	if active {
		title = activeTitleStyle.Render(fmt.Sprintf("[%d] %s", key, paneTitles[p]))
	}
	lines := []string{title}

	if active {
		lines = append(lines, searchBoxStyle.Width(48).Render(m.cardInput.View()))
	}

	if msg := m.state.ErrorFor(p); msg != "" {
		lines = append(lines, errorStyle.Render("✗ "+msg))
	}

	body := ""
	switch p {
	case models.PanelCurrent:
		if m.state.Current.Visible {
			body = m.renderCurrent()
		}
	case models.PanelHistorical:
		if m.state.Historical.Visible {
			body = m.renderHistorical()
		}
	case models.PanelMarine:
		if m.state.Marine.Visible {
			body = m.renderMarine()
		}
	}

	if body == "" {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Press %d to search", key)))
	} else {
		lines = append(lines, body)
	}

	style := paneStyle
	if active {
		style = activePaneStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
