package database

import (
	"fmt"

	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersonRecord represents the people table
type PersonRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"not null;index"`
	Name     string `gorm:"not null"`
}

// ShiftRecord represents the shifts table
type ShiftRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Position int    `gorm:"not null;index"`
	Event    string `gorm:"not null"`
	Person   string `gorm:"index"`
	Day      string `gorm:"not null"`
	Time     string `gorm:"not null"`
	Role     string
}

// NoteRecord represents the notes table
type NoteRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Block    int    `gorm:"not null;index"`
	Position int    `gorm:"not null"`
	Event    string `gorm:"not null"`
	Text     string `gorm:"not null"`
}

func (PersonRecord) TableName() string { return "people" }
func (ShiftRecord) TableName() string  { return "shifts" }
func (NoteRecord) TableName() string   { return "notes" }

// InitDB opens postgres when dsn is set and the sqlite file at path otherwise,
// then migrates the schema.
func InitDB(dsn, path string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if dsn != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		if path == "" {
			path = "shifts.db"
		}
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&PersonRecord{}, &ShiftRecord{}, &NoteRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// Import replaces the stored dataset with ds in a single transaction
func Import(db *gorm.DB, ds *dataset.Dataset) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&PersonRecord{}, &ShiftRecord{}, &NoteRecord{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		people := make([]PersonRecord, 0, len(ds.Roster))
		for i, name := range ds.Roster {
			people = append(people, PersonRecord{Position: i, Name: name})
		}
		if len(people) > 0 {
			if err := tx.CreateInBatches(people, 200).Error; err != nil {
				return fmt.Errorf("insert people: %w", err)
			}
		}

		shifts := make([]ShiftRecord, 0, len(ds.Shifts))
		for i, sh := range ds.Shifts {
			shifts = append(shifts, ShiftRecord{
				Position: i,
				Event:    sh.Event,
				Person:   sh.Person,
				Day:      sh.Day,
				Time:     sh.Time,
				Role:     sh.Role,
			})
		}
		if len(shifts) > 0 {
			if err := tx.CreateInBatches(shifts, 200).Error; err != nil {
				return fmt.Errorf("insert shifts: %w", err)
			}
		}

		var notes []NoteRecord
		for b, block := range ds.Notes {
			for i, text := range block.Notes {
				notes = append(notes, NoteRecord{Block: b, Position: i, Event: block.Event, Text: text})
			}
		}
		if len(notes) > 0 {
			if err := tx.CreateInBatches(notes, 200).Error; err != nil {
				return fmt.Errorf("insert notes: %w", err)
			}
		}
		return nil
	})
}

// Load reads the stored dataset back in its original order
func Load(db *gorm.DB) (*dataset.Dataset, error) {
	var people []PersonRecord
	if err := db.Order("position").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	var shifts []ShiftRecord
	if err := db.Order("position").Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	var notes []NoteRecord
	if err := db.Order("block").Order("position").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}

	ds := &dataset.Dataset{}
	for _, p := range people {
		ds.Roster = append(ds.Roster, p.Name)
	}
	for _, s := range shifts {
		ds.Shifts = append(ds.Shifts, models.Shift{
			Event:  s.Event,
			Person: s.Person,
			Day:    s.Day,
			Time:   s.Time,
			Role:   s.Role,
		})
	}
	block := -1
	for _, n := range notes {
		if n.Block != block {
			block = n.Block
			ds.Notes = append(ds.Notes, models.NoteBlock{Event: n.Event})
		}
		last := &ds.Notes[len(ds.Notes)-1]
		last.Notes = append(last.Notes, n.Text)
	}

	if err := dataset.Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}
