// Package bootstrap turns a Config into the loaded dataset and handler the
// executables share.
package bootstrap

import (
	"fmt"
	"time"

	"github.com/arnavshah/shift-lookup-go/internal/config"
	"github.com/arnavshah/shift-lookup-go/pkg/database"
	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/arnavshah/shift-lookup-go/pkg/handlers"
	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/token"
	"go.uber.org/zap"
)

// Dataset sources
const (
	SourceFile     = "file"
	SourceDatabase = "database"
	SourceBundled  = "bundled"
)

// LoadDataset reads the dataset from DATASET_FILE, then the database, then the
// bundled copy, whichever is configured first.
func LoadDataset(cfg *config.Config) (*dataset.Dataset, string, error) {
	switch {
	case cfg.Dataset.File != "":
		ds, err := dataset.LoadFile(cfg.Dataset.File)
		return ds, SourceFile, err
	case cfg.UseDatabase():
		db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
		if err != nil {
			return nil, SourceDatabase, err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		ds, err := database.Load(db)
		return ds, SourceDatabase, err
	default:
		ds, err := dataset.Default()
		return ds, SourceBundled, err
	}
}

// Collator builds the configured day collator
func Collator(cfg *config.Config) (*lookup.Collator, error) {
	return lookup.NewCollator(cfg.Collation.Locale, cfg.Collation.Numeric)
}

// NewHandler loads everything the HTTP handlers need
func NewHandler(cfg *config.Config, logger *zap.Logger) (*handlers.Handler, error) {
	ds, source, err := LoadDataset(cfg)
	if err != nil {
		return nil, fmt.Errorf("load dataset from %s: %w", source, err)
	}
	logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("people", len(ds.Roster)),
		zap.Int("shifts", len(ds.Shifts)),
	)

	collator, err := Collator(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Session.Secret == config.DefaultSessionSecret {
		logger.Warn("SESSION_SECRET is not set, session tokens are signed with the default secret")
	}
	tokens, err := token.NewIssuer(cfg.Session.Secret, time.Duration(cfg.Session.TTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return handlers.NewHandler(ds, collator, tokens, logger), nil
}
