package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// TestSearch_EmptyQueryHandling tests that blank searches never reach the network
func TestSearch_EmptyQueryHandling(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		s := newMockSearcher()
		m := newTestModel(LayoutGlobal, s)
		m = typeText(m, input)

		m, cmd := press(m, tea.KeyEnter)

		if cmd != nil {
			t.Errorf("input %q: Enter should not start a search", input)
		}
		if m.state.Loading {
			t.Errorf("input %q: loading indicator should stay hidden", input)
		}
		if m.state.Error == nil || m.state.Error.Message != models.MsgValidation {
			t.Errorf("input %q: expected validation error, got %+v", input, m.state.Error)
		}
		if s.calls() != 0 {
			t.Errorf("input %q: searcher called %d times, want 0", input, s.calls())
		}
	}
}

// TestSearch_NotFound tests the unknown city flow
func TestSearch_NotFound(t *testing.T) {
	s := newMockSearcher()
	s.errs["Nowhereville123"] = models.NewSearchError(models.KindNotFound, nil)
	m := newTestModel(LayoutGlobal, s)

	m = typeText(m, "Nowhereville123")
	m, cmd := press(m, tea.KeyEnter)

	if !m.state.Loading {
		t.Error("Expected loading indicator while searching")
	}

	m = deliver(m, resultOf(t, cmd))

	if m.state.Loading {
		t.Error("Loading indicator should be cleared after failure")
	}
	if m.state.Error == nil || m.state.Error.Message != "City not found. Please check the spelling and try again." {
		t.Fatalf("Error = %+v, want not-found message", m.state.Error)
	}
	if m.state.Current.Visible || m.state.Historical.Visible || m.state.Marine.Visible {
		t.Error("No panel should be shown after a failed search")
	}
	if !strings.Contains(m.View(), "City not found") {
		t.Error("View should show the error banner")
	}
}

func TestSearch_FetchFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"lookup failed", models.NewSearchError(models.KindLookupFailed, errors.New("dial tcp")), models.MsgLookupFailed},
		{"current unavailable", models.NewSearchError(models.KindCurrentUnavailable, nil), models.MsgCurrentUnavailable},
		{"historical unavailable", models.NewSearchError(models.KindHistoricalUnavailable, nil), models.MsgHistoricalUnavailable},
		{"untagged", errors.New("context canceled"), models.MsgGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockSearcher()
			s.errs["Paris"] = tt.err
			m := newTestModel(LayoutGlobal, s)

			m = typeText(m, "Paris")
			m, cmd := press(m, tea.KeyEnter)
			m = deliver(m, resultOf(t, cmd))

			if m.state.Error == nil || m.state.Error.Message != tt.want {
				t.Errorf("Error = %+v, want %q", m.state.Error, tt.want)
			}
			if m.state.Loading {
				t.Error("Loading indicator should be cleared")
			}
		})
	}
}

// TestSearch_ErrorDismiss tests that Esc dismisses the error banner
func TestSearch_ErrorDismiss(t *testing.T) {
	m := newTestModel(LayoutGlobal, newMockSearcher())
	m, _ = press(m, tea.KeyEnter)

	if m.state.Error == nil {
		t.Fatal("Expected validation error")
	}

	m, _ = press(m, tea.KeyEsc)
	if m.state.Error != nil {
		t.Error("Esc should dismiss the error")
	}
}

// TestSearch_ErrorRecovery tests that a new search replaces a previous error
func TestSearch_ErrorRecovery(t *testing.T) {
	s := newMockSearcher()
	s.errs["InvalidCity123"] = models.NewSearchError(models.KindNotFound, nil)
	s.results["Paris"] = parisResult()
	m := newTestModel(LayoutGlobal, s)

	m = typeText(m, "InvalidCity123")
	m, cmd := press(m, tea.KeyEnter)
	m = deliver(m, resultOf(t, cmd))
	if m.state.Error == nil {
		t.Fatal("Expected error for unknown city")
	}

	m.searchInput.SetValue("Paris")
	m, cmd = press(m, tea.KeyEnter)
	if m.state.Error != nil {
		t.Error("Submitting a new search should clear the previous error")
	}

	m = deliver(m, resultOf(t, cmd))
	if m.state.Error != nil || !m.state.Current.Visible {
		t.Error("Successful search should show panels and no error")
	}
}
