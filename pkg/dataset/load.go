package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are not JSON, YAML or a CSV directory
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// CSV file names expected inside a dataset directory
const (
	RosterCSV = "roster.csv"
	ShiftsCSV = "shifts.csv"
	NotesCSV  = "notes.csv"
)

// LoadFile reads a dataset from a .json or .yaml file, or from a directory
// holding roster.csv, shifts.csv and notes.csv.
func LoadFile(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	if info.IsDir() {
		return LoadCSVDir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ParseYAML decodes and validates a YAML dataset
func ParseYAML(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset yaml: %w", err)
	}
	if err := Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadCSVDir reads the three CSV files of a dataset directory. notes.csv is
// optional.
func LoadCSVDir(dir string) (*Dataset, error) {
	var ds Dataset

	rosterRows, err := readCSV(filepath.Join(dir, RosterCSV), "name")
	if err != nil {
		return nil, err
	}
	for _, row := range rosterRows {
		ds.Roster = append(ds.Roster, row["name"])
	}

	shiftRows, err := readCSV(filepath.Join(dir, ShiftsCSV), "event", "person", "day", "time")
	if err != nil {
		return nil, err
	}
	for _, row := range shiftRows {
		ds.Shifts = append(ds.Shifts, models.Shift{
			Event:  row["event"],
			Person: row["person"],
			Day:    row["day"],
			Time:   row["time"],
			Role:   row["role"],
		})
	}

	notesPath := filepath.Join(dir, NotesCSV)
	if _, err := os.Stat(notesPath); err == nil {
		noteRows, err := readCSV(notesPath, "event", "note")
		if err != nil {
			return nil, err
		}
		ds.Notes = groupNotes(noteRows)
	}

	if err := Validate(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// groupNotes folds (event, note) rows into blocks in first-seen event order
func groupNotes(rows []map[string]string) []models.NoteBlock {
	var blocks []models.NoteBlock
	index := make(map[string]int)
	for _, row := range rows {
		event := row["event"]
		i, ok := index[event]
		if !ok {
			i = len(blocks)
			index[event] = i
			blocks = append(blocks, models.NoteBlock{Event: event})
		}
		blocks[i].Notes = append(blocks[i].Notes, row["note"])
	}
	return blocks
}

// readCSV returns the rows of a headed CSV file keyed by column name
func readCSV(path string, required ...string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", filepath.Base(path), err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", filepath.Base(path), name)
		}
	}

	var rows []map[string]string
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}
		row := make(map[string]string, len(cols))
		for name, i := range cols {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
