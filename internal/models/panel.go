package models

import "strings"

// Panel identifies one of the result cards. PanelNone means no card.
type Panel int

const (
	PanelNone Panel = iota
	PanelCurrent
	PanelHistorical
	PanelMarine
)

// Panels lists the cards in display order.
var Panels = []Panel{PanelCurrent, PanelHistorical, PanelMarine}

func (p Panel) String() string {
	switch p {
	case PanelCurrent:
		return "current"
	case PanelHistorical:
		return "historical"
	case PanelMarine:
		return "marine"
	}
	return "none"
}

// ParsePanel is the inverse of Panel.String; unknown names yield PanelNone.
func ParsePanel(s string) Panel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return PanelCurrent
	case "historical":
		return PanelHistorical
	case "marine":
		return PanelMarine
	}
	return PanelNone
}

func (p Panel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Panel) UnmarshalText(b []byte) error {
	*p = ParsePanel(string(b))
	return nil
}
