package session

import (
	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
)

// State is the transient selection of a single user
type State struct {
	SelectedPerson string `json:"selected_person"`
	SearchText     string `json:"search_text"`
}

// Select picks name and pre-fills the search text with it. The name is not
// checked against the roster.
func Select(name string) State {
	return State{SelectedPerson: name, SearchText: name}
}

// Clear returns the empty state
func Clear() State {
	return State{}
}

// IsSelected reports whether a person is chosen
func (s State) IsSelected() bool {
	return s.SelectedPerson != ""
}

// View is everything derived from a State
type View struct {
	Candidates []string          `json:"candidates"`
	Selected   string            `json:"selected,omitempty"`
	Groups     []models.DayGroup `json:"groups"`
	Total      int               `json:"total"`
}

// Derive computes the view of state over l
func Derive(state State, l *lookup.Lookup) View {
	groups, total := l.Resolve(state.SelectedPerson)
	return View{
		Candidates: l.Search(state.SearchText),
		Selected:   state.SelectedPerson,
		Groups:     groups,
		Total:      total,
	}
}

// Session owns one user's state over a fixed dataset
type Session struct {
	lookup *lookup.Lookup
	state  State
}

// New creates a session starting from the empty state
func New(l *lookup.Lookup) *Session {
	return &Session{lookup: l}
}

// Restore creates a session starting from state
func Restore(l *lookup.Lookup, state State) *Session {
	return &Session{lookup: l, state: state}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// SetSearchText replaces the search text and keeps the selection
func (s *Session) SetSearchText(text string) {
	s.state.SearchText = text
}

// Select chooses a person
func (s *Session) Select(name string) {
	s.state = Select(name)
}

// Clear drops the selection and the search text
func (s *Session) Clear() {
	s.state = Clear()
}

// View recomputes the derived view from the current state
func (s *Session) View() View {
	return Derive(s.state, s.lookup)
}
