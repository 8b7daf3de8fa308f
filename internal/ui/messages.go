package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/search"
)

// searchResultMsg is sent when a search settles. panel is PanelNone for a
// full search.
type searchResultMsg struct {
	seq   uint64
	panel models.Panel
	query string
	res   *search.Result
	err   error
}

// clockTickMsg is sent once a second to refresh the header clock
type clockTickMsg time.Time

// startupSearchMsg runs the query passed on the command line
type startupSearchMsg struct {
	query string
}

// runSearch performs a full search in the background. No timeout is set;
// the request lives as long as the transport lets it.
func runSearch(s Searcher, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Search(context.Background(), query)
		return searchResultMsg{seq: seq, panel: models.PanelNone, query: query, res: res, err: err}
	}
}

// runPanelSearch performs a single-card search in the background
func runPanelSearch(s Searcher, seq uint64, panel models.Panel, query string) tea.Cmd {
	return func() tea.Msg {
		res, err := s.SearchPanel(context.Background(), query, panel)
		return searchResultMsg{seq: seq, panel: panel, query: query, res: res, err: err}
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func startupSearch(query string) tea.Cmd {
	return func() tea.Msg {
		return startupSearchMsg{query: query}
	}
}
