package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	})
}

func TestCompression_GzipsJSONResponses(t *testing.T) {
	body := strings.Repeat(`{"keyword":"running shoes","position":4},`, 50)
	handler := Compression(CompressionConfig{Level: 6})(jsonHandler(body))

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	decoded, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
	assert.Less(t, rec.Body.Len(), len(body))
}

func TestCompression_SkipsClientsWithoutGzip(t *testing.T) {
	handler := Compression(CompressionConfig{})(jsonHandler(`{"ok":true}`))

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, `{"ok":true}`, rec.Body.String())
}

func TestCompression_HonoursGzipOptOut(t *testing.T) {
	handler := Compression(CompressionConfig{})(jsonHandler(`{"ok":true}`))

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	req.Header.Set("Accept-Encoding", "gzip;q=0")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestCompression_SkipsNonJSONContent(t *testing.T) {
	handler := Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0x01, 0x02})
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, []byte{0x01, 0x02}, rec.Body.Bytes())
}

func TestCompression_SkipsNoContentStatus(t *testing.T) {
	handler := Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/brands/b1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}
