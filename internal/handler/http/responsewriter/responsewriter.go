// Package responsewriter wraps http.ResponseWriter to capture the status code
// and body size for access logs and metrics.
package responsewriter

import "net/http"

// ResponseWriter records what the wrapped handler wrote.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	written int
	wrote   bool
}

// Wrap returns w itself when it is already wrapped, so nested middleware share one recorder.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first call only.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.wrote {
		return
	}
	w.status = code
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// StatusCode is 200 when the handler never called WriteHeader.
func (w *ResponseWriter) StatusCode() int { return w.status }

func (w *ResponseWriter) BytesWritten() int { return w.written }

// HeaderWritten reports whether the response has started.
func (w *ResponseWriter) HeaderWritten() bool { return w.wrote }

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
