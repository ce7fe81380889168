package httpx

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	// Level is the gzip compression level, clamped to the valid range.
	Level int
}

// Compression returns a middleware that gzips JSON responses when the client
// accepts it. The decision is deferred to the first write so handlers that
// end up with 204/304 or non-JSON bodies pass through untouched.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}

	pool := &sync.Pool{
		New: func() any {
			w, _ := gzip.NewWriterLevel(nil, level)
			return w
		},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")

			gw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			defer gw.close()

			next.ServeHTTP(gw, r)
		})
	}
}

// acceptsGzip reports whether the Accept-Encoding header permits gzip,
// honouring an explicit q=0 opt-out.
func acceptsGzip(acceptEncoding string) bool {
	for part := range strings.SplitSeq(acceptEncoding, ",") {
		encoding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(encoding), "gzip") {
			continue
		}
		q := strings.ReplaceAll(strings.TrimSpace(params), " ", "")
		return q != "q=0" && !strings.HasPrefix(q, "q=0.0")
	}
	return false
}

// compressibleContentTypes lists the media types worth gzipping. The API
// serves JSON almost exclusively; text/plain covers error fallbacks.
var compressibleContentTypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
}

// gzipResponseWriter defers the compress-or-not decision until the response
// status and content type are known.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool        *sync.Pool
	gz          *gzip.Writer
	decided     bool
	passthrough bool
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	w.decide(status)
	w.ResponseWriter.WriteHeader(status)
}

func (w *gzipResponseWriter) Write(p []byte) (int, error) {
	w.decide(http.StatusOK)
	if w.passthrough {
		return w.ResponseWriter.Write(p)
	}
	return w.gz.Write(p)
}

func (w *gzipResponseWriter) decide(status int) {
	if w.decided {
		return
	}
	w.decided = true

	if status < http.StatusOK || status == http.StatusNoContent || status == http.StatusNotModified {
		w.passthrough = true
		return
	}
	contentType, _, _ := strings.Cut(w.Header().Get("Content-Type"), ";")
	if !compressibleContentTypes[strings.TrimSpace(contentType)] {
		w.passthrough = true
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")

	gz, _ := w.pool.Get().(*gzip.Writer)
	gz.Reset(w.ResponseWriter)
	w.gz = gz
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	// Close flushes any buffered compressed data to the client.
	_ = w.gz.Close()
	w.pool.Put(w.gz)
	w.gz = nil
}
