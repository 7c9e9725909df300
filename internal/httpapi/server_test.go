package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wikicx/lineardoc/internal/segment"
)

func testServer() *Server {
	return &Server{Segmenter: segment.PunctuationSegmenter}
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	testServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleTranslatePrepSuccess(t *testing.T) {
	body := `{"html":"<html><body><p>One. Two.</p></body></html>","language":"en"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/translate-prep", strings.NewReader(body))
	rec := httptest.NewRecorder()

	testServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Contains(t, rec.Body.String(), "cx-segment")
}

func TestHandleTranslatePrepRejectsEmptyHTML(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/translate-prep", strings.NewReader(`{"html":""}`))
	rec := httptest.NewRecorder()

	testServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "not given or is empty")
}

func TestHandleTranslatePrepRejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/translate-prep", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	testServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTranslatePrepSurfacesPipelineError(t *testing.T) {
	s := &Server{Segmenter: nil}
	body := `{"html":"<html><body><p>hi</p></body></html>"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/translate-prep", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
