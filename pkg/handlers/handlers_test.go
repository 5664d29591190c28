package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/arnavshah/shift-lookup-go/pkg/dataset"
	"github.com/arnavshah/shift-lookup-go/pkg/lookup"
	"github.com/arnavshah/shift-lookup-go/pkg/models"
	"github.com/arnavshah/shift-lookup-go/pkg/session"
	"github.com/arnavshah/shift-lookup-go/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ds := &dataset.Dataset{
		Roster: []string{"Alice", "Bob", "alison"},
		Shifts: []models.Shift{
			{Event: "A", Person: "Alice", Day: "Mon", Time: "14:00"},
			{Event: "A", Person: "Alice", Day: "Mon", Time: "9:00", Role: "lead"},
			{Event: "A", Person: "Bob", Day: "Tue", Time: "10:00"},
		},
		Notes: []models.NoteBlock{
			{Event: "A", Notes: []string{"Bring the keys"}},
			{Event: "B", Notes: []string{"Count the change"}},
		},
	}
	collator, err := lookup.NewCollator("en", true)
	require.NoError(t, err)
	tokens, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	return NewRouter(NewHandler(ds, collator, tokens, nil))
}

func do(t *testing.T, r http.Handler, method, path, body, sessionToken string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestRoster(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodGet, "/api/roster?q=ali", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Alice", "alison"}, out["names"])

	_, out = do(t, r, http.MethodGet, "/api/roster", "", "")
	assert.Equal(t, []any{"Alice", "Bob", "alison"}, out["names"])
}

func TestShifts(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/shifts?person="+url.QueryEscape("Alice"), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ShiftsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "Mon", resp.Groups[0].Day)
	assert.Equal(t, "9:00", resp.Groups[0].Shifts[0].Time)
	assert.Equal(t, "lead", resp.Groups[0].Shifts[0].Role)
	assert.Equal(t, "14:00", resp.Groups[0].Shifts[1].Time)
}

func TestShifts_NoPerson(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodGet, "/api/shifts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), out["total"])
	assert.Equal(t, []any{}, out["groups"])
}

func TestNotes(t *testing.T) {
	r := newTestRouter(t)

	_, out := do(t, r, http.MethodGet, "/api/notes", "", "")
	notes := out["notes"].([]any)
	require.Len(t, notes, 2)
	assert.Equal(t, "A", notes[0].(map[string]any)["event"])
}

func TestSummary(t *testing.T) {
	r := newTestRouter(t)

	_, out := do(t, r, http.MethodGet, "/api/summary", "", "")
	summary := out["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["people"])
	assert.Equal(t, []any{"Mon", "Tue"}, summary["days"])
	assert.Equal(t, "en", out["locale"])
}

func TestSessionFlow(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodGet, "/api/session", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	tok := out["token"].(string)
	view := out["view"].(map[string]any)
	assert.Len(t, view["candidates"], 3)

	_, out = do(t, r, http.MethodPost, "/api/session/search", `{"text":"ALI"}`, tok)
	tok = out["token"].(string)
	assert.Equal(t, []any{"Alice", "alison"}, out["view"].(map[string]any)["candidates"])

	_, out = do(t, r, http.MethodPost, "/api/session/select", `{"name":"Alice"}`, tok)
	tok = out["token"].(string)
	state := out["state"].(map[string]any)
	assert.Equal(t, "Alice", state["selected_person"])
	assert.Equal(t, "Alice", state["search_text"])
	assert.Equal(t, float64(2), out["view"].(map[string]any)["total"])

	_, out = do(t, r, http.MethodGet, "/api/session", "", tok)
	assert.Equal(t, "Alice", out["state"].(map[string]any)["selected_person"])

	_, out = do(t, r, http.MethodPost, "/api/session/clear", "", tok)
	state = out["state"].(map[string]any)
	assert.Equal(t, "", state["selected_person"])
	assert.Equal(t, "", state["search_text"])
	assert.Equal(t, float64(0), out["view"].(map[string]any)["total"])
}

func TestSession_InvalidToken(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodGet, "/api/session", "", "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid session token", out["error"])
}

func TestSession_HeaderToken(t *testing.T) {
	r := newTestRouter(t)
	tokens, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	tok, err := tokens.Issue(session.Select("Bob"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("X-Session-Token", tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"selected_person":"Bob"`)
}

func TestSelectSession_EmptyName(t *testing.T) {
	r := newTestRouter(t)

	_, out := do(t, r, http.MethodPost, "/api/session/select", `{"name":"Alice"}`, "")
	tok := out["token"].(string)

	w, out := do(t, r, http.MethodPost, "/api/session/select", `{"name":""}`, tok)
	require.Equal(t, http.StatusOK, w.Code)
	state := out["state"].(map[string]any)
	assert.Equal(t, "", state["selected_person"])
	assert.Equal(t, "", state["search_text"])
	assert.Equal(t, float64(0), out["view"].(map[string]any)["total"])

	w, _ = do(t, r, http.MethodPost, "/api/session/select", `{}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSelectSession_MalformedBody(t *testing.T) {
	r := newTestRouter(t)

	w, out := do(t, r, http.MethodPost, "/api/session/select", `{"name":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, out["error"])
}

func TestValidateDataset(t *testing.T) {
	r := newTestRouter(t)

	_, out := do(t, r, http.MethodPost, "/api/validate",
		`{"roster":["Alice","Alice"],"shifts":[{"event":"A","person":"Alice","day":"Mon","time":"9:00"}]}`, "")
	assert.Equal(t, true, out["valid"])
	assert.Equal(t, []any{"Alice"}, out["duplicates"])

	_, out = do(t, r, http.MethodPost, "/api/validate",
		`{"roster":["Alice"],"shifts":[{"event":"A","person":"Alice","day":"Mon"}]}`, "")
	assert.Equal(t, false, out["valid"])
	assert.Equal(t, []any{"Shifts[0].Time is required"}, out["problems"])

	_, out = do(t, r, http.MethodPost, "/api/validate", `{"roster":[]}`, "")
	assert.Equal(t, false, out["valid"])
}

func TestIndex(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "シフト確認")
}
