package models

// Event names used by the bundled dataset
const (
	EventShogi  = "将棋サロン"
	EventWarabi = "わらび餅"
)

// Shift represents one scheduled assignment of a person to an event
type Shift struct {
	Event  string `json:"event" yaml:"event" validate:"required"`
	Person string `json:"person" yaml:"person"`
	Day    string `json:"day" yaml:"day" validate:"required"`
	Time   string `json:"time" yaml:"time" validate:"required"`
	Role   string `json:"role,omitempty" yaml:"role,omitempty"`
}

// HasRole reports whether the optional role label is present
func (s Shift) HasRole() bool {
	return s.Role != ""
}

// IsShogi reports whether the shift belongs to the shogi salon
func (s Shift) IsShogi() bool {
	return s.Event == EventShogi
}

// NoteBlock holds the operational notes of one event category
type NoteBlock struct {
	Event string   `json:"event" yaml:"event" validate:"required"`
	Notes []string `json:"notes" yaml:"notes"`
}

// DayGroup is one day's partition of a person's shifts
type DayGroup struct {
	Day    string  `json:"day"`
	Shifts []Shift `json:"shifts"`
}

// ShiftsResponse is the payload returned for a person's shifts
type ShiftsResponse struct {
	Person string     `json:"person"`
	Groups []DayGroup `json:"groups"`
	Total  int        `json:"total"` // number of shift records, not hours
}

// Summary describes a loaded dataset
type Summary struct {
	People           int            `json:"people"`
	Shifts           int            `json:"shifts"`
	ShiftsByEvent    map[string]int `json:"shifts_by_event"`
	Days             []string       `json:"days"`
	UnassignedShifts int            `json:"unassigned_shifts"` // person empty or not on the roster
	NoteBlocks       int            `json:"note_blocks"`
}
