package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// errSimulated stands in for a failure raised further down the chain.
var errSimulated = errors.New("simulated downstream failure")

// AppHandler serves the demo application the access logger sits in front of.
type AppHandler struct {
	logger *slog.Logger
}

// NewAppHandler creates a new AppHandler.
func NewAppHandler(logger *slog.Logger) *AppHandler {
	return &AppHandler{logger: logger}
}

// Root echoes the caller's address.
// GET /
func (h *AppHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, http.StatusOK, nil)
}

// Status answers with the status code taken from the path.
// GET /status/{code}
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.PathValue("code"))
	if err != nil || code < 200 || code > 599 {
		http.Error(w, "code must be an integer between 200 and 599", http.StatusBadRequest)
		return
	}
	h.finish(w, r, code, nil)
}

// Fail reports a downstream error, which is translated into a 500.
// GET /fail
func (h *AppHandler) Fail(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, http.StatusOK, errSimulated)
}

func (h *AppHandler) finish(w http.ResponseWriter, r *http.Request, status int, err error) {
	w.Header().Set("X-Sent", "true")
	if err != nil {
		h.logger.Error("request failed", "error", err, "path", r.URL.Path)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	remote := r.RemoteAddr
	if remote == "" {
		remote = "-"
	}
	w.WriteHeader(status)
	if _, err := io.WriteString(w, remote); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}
