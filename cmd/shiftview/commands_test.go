package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = "../../pkg/dataset/testdata/csv"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchCmd(t *testing.T) {
	out, err := run(t, "--dataset", testDataset, "search", "AL")
	require.NoError(t, err)
	assert.Equal(t, "Alice\n", out)

	out, err = run(t, "--dataset", testDataset, "search")
	require.NoError(t, err)
	assert.Equal(t, "Alice\nBob\n", out)
}

func TestShowCmd(t *testing.T) {
	out, err := run(t, "--dataset", testDataset, "show", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice さんのシフト")
	assert.Contains(t, out, "総シフト数: 2")
	assert.Less(t, strings.Index(out, "9:00"), strings.Index(out, "14:00"))
}

func TestShowCmd_JSON(t *testing.T) {
	out, err := run(t, "--dataset", testDataset, "--json", "show", "Bob")
	require.NoError(t, err)

	var resp models.ShiftsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "Bob", resp.Person)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "Tue", resp.Groups[0].Day)
}

func TestNotesCmd(t *testing.T) {
	out, err := run(t, "--dataset", testDataset, "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Aの注意事項")
	assert.Contains(t, out, "Lock up")
}

func TestSummaryCmd(t *testing.T) {
	out, err := run(t, "--dataset", testDataset, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "People:     2")
	assert.Contains(t, out, "Shifts:     3")
}

func TestShowCmd_MissingArg(t *testing.T) {
	_, err := run(t, "--dataset", testDataset, "show")
	assert.Error(t, err)
}

func TestBundledDataset(t *testing.T) {
	out, err := run(t, "--json", "search", "青木")
	require.NoError(t, err)
	assert.Contains(t, out, "青木 颯太")
}

func writeDayDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "days.yaml")
	data := `roster:
  - Alice
shifts:
  - {event: A, person: Alice, day: d9, time: "9:00"}
  - {event: A, person: Alice, day: d10, time: "9:00"}
notes: []
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestSummaryCmd_NumericFromEnv(t *testing.T) {
	path := writeDayDataset(t)
	t.Setenv("COLLATION_NUMERIC", "false")

	out, err := run(t, "--dataset", path, "summary")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "  d10\n"), strings.Index(out, "  d9\n"), "env setting should hold without the flag")

	out, err = run(t, "--dataset", path, "--numeric=true", "summary")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "  d9\n"), strings.Index(out, "  d10\n"), "explicit flag should override the env setting")
}
