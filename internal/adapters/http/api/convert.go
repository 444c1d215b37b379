package api

import (
	"errors"
	"net/http"
	"strconv"

	service "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/pkg/logger"
)

// ExportFilename is the attachment name of every XML download.
const ExportFilename = "sportscode_output.xml"

// ConvertHandler handles conversion and inspection uploads.
type ConvertHandler struct {
	conv     Converter
	maxBytes int64
	logger   logger.Logger
}

// NewConvertHandler creates a new convert handler.
func NewConvertHandler(conv Converter, maxBytes int64, log logger.Logger) *ConvertHandler {
	return &ConvertHandler{conv: conv, maxBytes: maxBytes, logger: log}
}

// HandleConvert handles POST /convert and streams back the timeline XML.
func (h *ConvertHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(w, r, h.maxBytes)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	conv, err := h.conv.Convert(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	w.Header().Set("X-Run-Id", conv.RunID)
	w.Header().Set("X-Events", strconv.Itoa(conv.Stats.Emitted))
	w.Header().Set("X-Rows-Skipped", strconv.Itoa(conv.Stats.Skipped))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(conv.XML)
}

// HandleInspect handles POST /inspect and reports header, default role
// mapping and a time preview.
func (h *ConvertHandler) HandleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(w, r, h.maxBytes)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	insp, err := h.conv.Inspect(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insp)
}

// fail maps err to a status and error code.
func (h *ConvertHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, service.ErrUnreadable):
		writeError(w, http.StatusUnprocessableEntity, "unreadable_csv", err)
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		h.logger.Error(r.Context(), "request failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}
