package stats

import (
	"context"
	"net/http"
	"time"

	"bookscan/internal/httpx"
	"bookscan/internal/library"
	"bookscan/internal/platform/logger"
	"bookscan/internal/profile"
)

type LibrarySource interface {
	All(ctx context.Context, deviceID string) ([]library.Entry, error)
}

type ProfileSource interface {
	Find(ctx context.Context, deviceID string) (*profile.Preferences, error)
}

type HTTPHandler struct {
	library LibrarySource
	profile ProfileSource
	log     logger.Logger
	now     func() time.Time
}

func NewHTTPHandler(lib LibrarySource, prof ProfileSource, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{library: lib, profile: prof, log: log, now: time.Now}
}

// Get handles GET /v1/stats
// @Summary Reading statistics
// @Tags stats
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/stats [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	deviceID := httpx.DeviceIDFrom(r)

	entries, err := h.library.All(r.Context(), deviceID)
	if err != nil {
		h.log.Error("load library for stats", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	prefs, err := h.profile.Find(r.Context(), deviceID)
	if err != nil {
		h.log.Error("load preferences for stats", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}

	httpx.JSONSuccess(w, r, Compute(entries, prefs, h.now()), nil)
}
