package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/storage"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (Server, storage.Storage) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.RunMigrations(context.Background()))

	return New(logger.Get(), store), store
}

func doRequest(t *testing.T, srv Server, method, path string) (*httptest.ResponseRecorder, GenericResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var body GenericResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	rec, body := doRequest(t, srv, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body.Response)
}

func TestListRuns(t *testing.T) {
	srv, store := newTestServer(t)

	rec, _ := doRequest(t, srv, http.MethodGet, "/api/v1/runs")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.RecordRun(context.Background(), storage.Run{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
		SortMode:  "size",
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	out := httptest.NewRecorder()
	srv.Router().ServeHTTP(out, req)

	var body struct {
		Response []storage.Run `json:"response"`
	}
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &body))
	require.Len(t, body.Response, 1)
	assert.Equal(t, "run-1", body.Response[0].ID)
}

func TestGetRun(t *testing.T) {
	srv, store := newTestServer(t)

	rec, body := doRequest(t, srv, http.MethodGet, "/api/v1/runs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "run not found", body.Error)

	require.NoError(t, store.RecordRun(context.Background(), storage.Run{
		ID:        "run-1",
		StartedAt: time.Now().UTC(),
		SortMode:  "date",
		Categories: []storage.CategoryStats{
			{Category: "large_shows", ShowCount: 3, TotalSizeGB: 420},
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/run-1", nil)
	out := httptest.NewRecorder()
	srv.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	var found struct {
		Response storage.Run `json:"response"`
	}
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &found))
	assert.Equal(t, "date", found.Response.SortMode)
	require.Len(t, found.Response.Categories, 1)
	assert.Equal(t, "large_shows", found.Response.Categories[0].Category)
}

func TestGetSummary(t *testing.T) {
	srv, store := newTestServer(t)

	require.NoError(t, store.RecordRun(context.Background(), storage.Run{
		ID:          "run-1",
		StartedAt:   time.Now().UTC(),
		SortMode:    "size",
		TotalSizeGB: 99.5,
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	out := httptest.NewRecorder()
	srv.Router().ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	var body struct {
		Response storage.Summary `json:"response"`
	}
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Response.RunCount)
	assert.Equal(t, 99.5, body.Response.TotalSizeGB)
}
