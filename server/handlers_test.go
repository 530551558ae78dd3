package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ficha-generator/backend"
	"ficha-generator/export"
)

// stubCapturer keeps export tests off a real browser.
type stubCapturer struct{}

func (stubCapturer) Capture(ctx context.Context, htmlPath string) ([]byte, error) {
	if _, err := os.ReadFile(htmlPath); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 100, 50))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (stubCapturer) Paginate(ctx context.Context, htmlPath string) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestServer(t *testing.T, backendBody string) *Server {
	t.Helper()

	bts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(backendBody))
	}))
	t.Cleanup(bts.Close)

	logger := zerolog.Nop()
	client := backend.NewClient(bts.URL, 5*time.Second, logger)
	exporter := export.New(stubCapturer{}, export.NewImageResolver(time.Second, 1, logger), logger)
	return New(client, exporter, nil, 30*time.Second, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGenerateBackendRejection(t *testing.T) {
	s := newTestServer(t, `{"ok": false, "error": "quota exceeded"}`)
	router := s.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fichas", `{"url":"https://portal.cl/MLC-1-depto"}`)
	require.Equal(t, http.StatusBadGateway, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "quota exceeded", resp.Error, "backend message must surface exactly")

	// Sharing and export stay disabled after a failed generation.
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, router, http.MethodGet, "/api/v1/fichas/current/message", "").Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, router, http.MethodPost, "/api/v1/fichas/current/export", "").Code)
}

func TestGenerateMinimalRecordEndToEnd(t *testing.T) {
	s := newTestServer(t, `{"ok": true, "titulo": "Casa mínima", "sourceUrl": "https://portal.cl/MLC-9-casa"}`)
	router := s.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fichas", `{"url":"https://portal.cl/MLC-9-casa"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.NotNil(t, resp.Card)
	assert.Equal(t, "Casa mínima", resp.Card.Title)
	assert.Equal(t, "N/D", resp.Card.FormattedPrice)

	// Message is non-empty and ends in the Link line.
	mr := doJSON(t, router, http.MethodGet, "/api/v1/fichas/current/message", "")
	require.Equal(t, http.StatusOK, mr.Code)
	assert.Contains(t, mr.Header().Get("Content-Type"), "text/plain")
	lines := strings.Split(mr.Body.String(), "\n")
	assert.Equal(t, "Link: https://portal.cl/MLC-9-casa", lines[len(lines)-1])

	// Photo-less export still succeeds.
	er := doJSON(t, router, http.MethodPost, "/api/v1/fichas/current/export", "")
	require.Equal(t, http.StatusOK, er.Code, er.Body.String())
	assert.Equal(t, "application/pdf", er.Header().Get("Content-Type"))
	assert.Contains(t, er.Header().Get("Content-Disposition"), `filename="casa-mnima.pdf"`)
	assert.True(t, bytes.HasPrefix(er.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateReplacesPreviousRecord(t *testing.T) {
	s := newTestServer(t, `{"ok": true, "titulo": "Segunda", "sourceUrl": "https://portal.cl/MLC-2"}`)
	router := s.Router()

	// Preload a different record; a new generation overwrites it wholesale.
	rr := doJSON(t, router, http.MethodPost, "/api/v1/fichas", `{"url":"https://portal.cl/MLC-2"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	cr := doJSON(t, router, http.MethodGet, "/api/v1/fichas/current/", "")
	require.Equal(t, http.StatusOK, cr.Code)
	assert.Contains(t, cr.Body.String(), "Segunda")
}

func TestGenerateMissingURL(t *testing.T) {
	s := newTestServer(t, `{"ok": true}`)
	rr := doJSON(t, s.Router(), http.MethodPost, "/api/v1/fichas", `{"url":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportGateRejectsConcurrentExport(t *testing.T) {
	s := newTestServer(t, `{"ok": true, "titulo": "Depto", "sourceUrl": "https://portal.cl/MLC-3"}`)
	router := s.Router()

	require.Equal(t, http.StatusOK,
		doJSON(t, router, http.MethodPost, "/api/v1/fichas", `{"url":"https://portal.cl/MLC-3"}`).Code)

	// Simulate an in-flight export holding the gate.
	require.True(t, s.session.BeginExport())
	defer s.session.EndExport()

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fichas/current/export", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestHistoryNotConfigured(t *testing.T) {
	s := newTestServer(t, `{"ok": true}`)
	rr := doJSON(t, s.Router(), http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.Nop()
	client := backend.NewClient("http://127.0.0.1:0", time.Second, logger)
	exporter := export.New(stubCapturer{}, export.NewImageResolver(time.Second, 1, logger), logger)
	s := New(client, exporter, nil, time.Second, zerolog.New(&buf))

	rr := doJSON(t, s.Router(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Contains(t, buf.String(), `"path":"/health"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), "request completed")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, `{"ok": true}`)
	rr := doJSON(t, s.Router(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}
