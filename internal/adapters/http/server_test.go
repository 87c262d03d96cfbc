package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/turlang/tur/internal/adapters/http"
	"github.com/turlang/tur/internal/logging"
	"github.com/turlang/tur/internal/session"
	"github.com/turlang/tur/pkg/adapters/memory"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
)

const walker = `name: walker
tape: a, a
rules:
  start:
    a -> b, R, start
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	program, err := dsl.Parse(walker)
	require.NoError(t, err)

	catalog := memory.NewCatalog(program)
	manager := session.NewManager(memory.NewStore(), logging.NewNop())
	return api.NewHandler(catalog, manager, logging.NewNop())
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestParseEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/parse", map[string]string{"source": walker})
	require.Equal(t, http.StatusOK, rec.Code)

	var program domain.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &program))
	assert.Equal(t, "walker", program.Name)
	assert.Equal(t, "start", program.InitialState)
}

func TestParseEndpointRejectsBadSource(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/parse", map[string]string{"source": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestEncodeDecodeEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/encode", map[string]string{"source": walker})
	require.Equal(t, http.StatusOK, rec.Code)

	var enc struct {
		Encoded string `json:"encoded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enc))
	require.NotEmpty(t, enc.Encoded)

	rec = doJSON(t, handler, http.MethodPost, "/api/decode", map[string]string{"encoded": enc.Encoded})
	require.Equal(t, http.StatusOK, rec.Code)

	var program domain.Program
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &program))
	assert.Equal(t, "walker", program.Name)
	assert.Equal(t, []string{"aa"}, program.Tapes)
}

func TestProgramEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"walker"}, names)

	rec = doJSON(t, handler, http.MethodGet, "/api/programs/walker", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/programs/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]string{"program": "walker", "id": "s1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Session domain.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "s1", created.Session.ID)

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/s1/step", map[string]int{"count": 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var stepped struct {
		Session domain.Session `json:"session"`
		Outcome string         `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stepped))
	assert.Equal(t, "continue", stepped.Outcome)
	assert.Equal(t, 1, stepped.Session.Snapshot.Steps)

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/s1/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stepped))
	assert.Equal(t, "halted", stepped.Outcome)
	assert.Equal(t, 2, stepped.Session.Snapshot.Steps)

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/s1/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stepped))
	assert.Equal(t, 0, stepped.Session.Snapshot.Steps)

	rec = doJSON(t, handler, http.MethodPut, "/api/sessions/s1/tapes", map[string][]string{"tapes": {"aaaa"}})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "s1")

	rec = doJSON(t, handler, http.MethodDelete, "/api/sessions/s1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSessionFromSource(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]string{"source": walker})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Session domain.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Session.ID)
}

func TestCreateSessionRequiresProgram(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStrictHaltReason(t *testing.T) {
	handler := newTestHandler(t)

	strict := `name: strict-walker
mode: strict
tape: a
rules:
  start:
    a -> a, R, start
`
	rec := doJSON(t, handler, http.MethodPost, "/api/sessions", map[string]string{"source": strict, "id": "s2"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/sessions/s2/run", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Outcome    string `json:"outcome"`
		HaltReason string `json:"halt_reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "halted", resp.Outcome)
	assert.Contains(t, resp.HaltReason, "no transition defined")
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	doJSON(t, handler, http.MethodPost, "/api/parse", map[string]string{"source": walker})

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tur_programs_parsed_total")
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(t)

	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
