// Package dataset loads the roster, shifts and notes the lookup runs on.
// A Dataset is never modified after it is loaded.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/go-playground/validator/v10"
)

//go:embed data/default.json
var defaultEmbed embed.FS

// Dataset is the static data behind a lookup session
type Dataset struct {
	Roster []string           `json:"roster" yaml:"roster"`
	Shifts []models.Shift     `json:"shifts" yaml:"shifts" validate:"dive"`
	Notes  []models.NoteBlock `json:"notes" yaml:"notes" validate:"dive"`
}

// ValidationError lists every invalid record found in a dataset
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid dataset: " + strings.Join(e.Problems, "; ")
}

var validate = validator.New()

// Default returns the dataset bundled with the binary
func Default() (*Dataset, error) {
	data, err := defaultEmbed.ReadFile("data/default.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled dataset: %w", err)
	}
	return ParseJSON(data)
}

// ParseJSON decodes and validates a JSON dataset
func ParseJSON(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset json: %w", err)
	}
	if err := Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks that every shift has an event, a day and a time and that
// every note block names its event. Shifts for people missing from the roster
// are allowed.
func Validate(ds *Dataset) error {
	err := validate.Struct(ds)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate dataset: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Dataset.")
		problems = append(problems, fmt.Sprintf("%s is %s", field, fe.Tag()))
	}
	return &ValidationError{Problems: problems}
}

// Lookup builds a lookup over the dataset
func (ds *Dataset) Lookup(collator *lookup.Collator) *lookup.Lookup {
	return lookup.NewLookup(ds.Roster, ds.Shifts, collator)
}

// NotesFor returns the notes of event, or nil when the event has none
func (ds *Dataset) NotesFor(event string) []string {
	for _, block := range ds.Notes {
		if block.Event == event {
			return block.Notes
		}
	}
	return nil
}

// Summarize counts the dataset's contents
func (ds *Dataset) Summarize(collator *lookup.Collator) models.Summary {
	onRoster := make(map[string]bool, len(ds.Roster))
	for _, name := range ds.Roster {
		onRoster[name] = true
	}

	byEvent := make(map[string]int)
	unassigned := 0
	for _, sh := range ds.Shifts {
		byEvent[sh.Event]++
		if !onRoster[sh.Person] {
			unassigned++
		}
	}

	return models.Summary{
		People:           len(ds.Roster),
		Shifts:           len(ds.Shifts),
		ShiftsByEvent:    byEvent,
		Days:             lookup.Days(ds.Shifts, collator),
		UnassignedShifts: unassigned,
		NoteBlocks:       len(ds.Notes),
	}
}
