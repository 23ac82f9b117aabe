package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestOCR(t *testing.T, handler http.HandlerFunc) (*OCRSpaceService, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	return &OCRSpaceService{
		client:   srv.Client(),
		apiKey:   "test-key",
		endpoint: srv.URL,
		tempDir:  dir,
	}, dir
}

func assertNoLeakedTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries, "temp upload file should be removed on every exit path")
}

func TestExtractTextSuccess(t *testing.T) {
	svc, dir := newTestOCR(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "test-key", r.FormValue("apikey"))
		assert.Equal(t, "eng", r.FormValue("language"))
		assert.Equal(t, "true", r.FormValue("detectOrientation"))
		assert.Equal(t, "true", r.FormValue("scale"))
		assert.Equal(t, "2", r.FormValue("OCREngine"))

		_, _, err := r.FormFile("file")
		assert.NoError(t, err)

		w.Write([]byte(`{"OCRExitCode":1,"ParsedResults":[{"ParsedText":"Takaran Saji 30g"},{"ParsedText":"Gula 12g"}]}`))
	})

	text, ok := svc.ExtractText(context.Background(), []byte("fake-jpeg"))
	assert.True(t, ok)
	assert.Equal(t, "Takaran Saji 30g Gula 12g", text)
	assertNoLeakedTempFiles(t, dir)
}

func TestExtractTextServiceFailure(t *testing.T) {
	svc, dir := newTestOCR(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"OCRExitCode":99,"ErrorMessage":["Invalid file type"]}`))
	})

	text, ok := svc.ExtractText(context.Background(), []byte("fake-jpeg"))
	assert.False(t, ok)
	assert.Contains(t, text, "OCR Error")
	assert.Contains(t, text, "Invalid file type")
	assertNoLeakedTempFiles(t, dir)
}

func TestExtractTextTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	dir := t.TempDir()
	svc := &OCRSpaceService{
		client:   &http.Client{Timeout: time.Second},
		apiKey:   "test-key",
		endpoint: srv.URL,
		tempDir:  dir,
	}

	text, ok := svc.ExtractText(context.Background(), []byte("fake-jpeg"))
	assert.False(t, ok)
	assert.Contains(t, text, "Error:")
	assertNoLeakedTempFiles(t, dir)
}

func TestExtractTextBadJSON(t *testing.T) {
	svc, dir := newTestOCR(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	})

	text, ok := svc.ExtractText(context.Background(), []byte("fake-jpeg"))
	assert.False(t, ok)
	assert.Contains(t, text, "Error:")
	assertNoLeakedTempFiles(t, dir)
}
