package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/render"
	"github.com/kinoshitayoshihiro/haru/rhythm"
)

func testServer(t *testing.T) *ArrangeServer {
	t.Helper()
	lib, err := rhythm.Load("../data/rhythm_library.yml")
	assert.NoError(t, err)
	return &ArrangeServer{Lib: lib, Flags: &commonFlags{seed: 1}}
}

func chartBody(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("../data/chordmap.sample.json")
	assert.NoError(t, err)
	return body
}

func TestPlanEndpointReturnsBlockStream(t *testing.T) {
	assert := assert.New(t)

	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader(chartBody(t)))
	rec := httptest.NewRecorder()
	srv.HandlePlan(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.NotEmpty(rec.Header().Get("X-Request-Id"))

	var blocks []model.ResolvedBlock
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &blocks))
	assert.NotEmpty(blocks)
	assert.Equal(0.0, blocks[0].StartOffset)
}

func TestRenderEndpointReturnsParsableMIDI(t *testing.T) {
	assert := assert.New(t)

	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(chartBody(t)))
	rec := httptest.NewRecorder()
	srv.HandleRender(rec, req)

	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("audio/midi", rec.Header().Get("Content-Type"))

	tmp := filepath.Join(t.TempDir(), "response.mid")
	assert.NoError(os.WriteFile(tmp, rec.Body.Bytes(), 0o644))
	s, err := render.ReadSMF(tmp)
	assert.NoError(err)
	stats := render.Stats(s)
	assert.Greater(stats.Notes, 0)
}

func TestBadRequestsAreRejected(t *testing.T) {
	assert := assert.New(t)

	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	srv.HandlePlan(rec, req)
	assert.Equal(http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/plan", bytes.NewReader([]byte(`{"sections": []}`)))
	rec = httptest.NewRecorder()
	srv.HandlePlan(rec, req)
	assert.Equal(http.StatusBadRequest, rec.Code)

	bad := `{"sections": [{"name": "A", "chord_progression": [{"chord": "Hmaj7"}]}]}`
	req = httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte(bad)))
	rec = httptest.NewRecorder()
	srv.HandleRender(rec, req)
	assert.Equal(http.StatusUnprocessableEntity, rec.Code)
}
