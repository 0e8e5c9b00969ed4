package errors

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrorBody is the JSON shape every failed request returns: §7 fixes it
// as {"error": "<message>", "time": <ms>}.
type ErrorBody struct {
	Error string `json:"error"`
	Time  int64  `json:"time"`
}

// Handler maps a core error to an HTTP status and writes the response
// body §7 requires. The core itself never picks a status code — only
// this boundary layer does.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle writes the error response for err, logging it at a level that
// matches severity. start is the time the request began, used to compute
// the elapsed-ms "time" field.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	if appErr, ok := As(err); ok {
		status = appErr.HTTPStatus()
		message = appErr.Message
	} else if err != nil {
		message = err.Error()
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	switch {
	case status >= 500:
		h.logger.Error("request failed", fields...)
	case status >= 400:
		h.logger.Warn("request rejected", fields...)
	}

	h.writeJSON(w, status, ErrorBody{
		Error: message,
		Time:  time.Since(start).Milliseconds(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body ErrorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode error response", zap.Error(err))
	}
}

// Recoverer returns middleware that converts panics into internal errors
// with the same JSON shape, mirroring chi's Recoverer but emitting the
// spec's error body instead of a bare 500.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				h.Handle(w, r, start, NewIO("panic recovered", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
