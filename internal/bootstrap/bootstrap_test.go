package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavshah/shift-lookup-go/internal/config"
	"github.com/arnavshah/shift-lookup-go/pkg/database"
	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadDataset_Bundled(t *testing.T) {
	ds, source, err := LoadDataset(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, SourceBundled, source)
	assert.NotEmpty(t, ds.Roster)
}

func TestLoadDataset_File(t *testing.T) {
	cfg := &config.Config{}
	cfg.Dataset.File = "../../pkg/dataset/testdata/dataset.yaml"

	ds, source, err := LoadDataset(cfg)
	require.NoError(t, err)
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, []string{"Alice", "Bob"}, ds.Roster)
}

func TestLoadDataset_Database(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.db")
	db, err := database.InitDB("", path)
	require.NoError(t, err)
	want, err := dataset.Default()
	require.NoError(t, err)
	require.NoError(t, database.Import(db, want))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ds, source, err := LoadDataset(&config.Config{DataPath: path})
	require.NoError(t, err)
	assert.Equal(t, SourceDatabase, source)
	assert.Equal(t, want.Roster, ds.Roster)
}

func TestNewHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Collation.Locale = "ja"
	cfg.Collation.Numeric = true
	cfg.Session.Secret = "secret"
	cfg.Session.TTLHours = 1

	h, err := NewHandler(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "ja", h.Collator.Locale())

	cfg.Session.Secret = ""
	_, err = NewHandler(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewHandler_DefaultSecretWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := &config.Config{}
	cfg.Collation.Locale = "ja"
	cfg.Session.TTLHours = 1

	cfg.Session.Secret = "secret"
	_, err := NewHandler(cfg, zap.New(core))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	cfg.Session.Secret = config.DefaultSessionSecret
	_, err = NewHandler(cfg, zap.New(core))
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "SESSION_SECRET")
}

func TestLoadConfig_DefaultSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	require.NoError(t, os.Unsetenv("SESSION_SECRET"))
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSessionSecret, cfg.Session.Secret)
}
