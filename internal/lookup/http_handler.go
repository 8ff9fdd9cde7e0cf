package lookup

import (
	"context"
	"errors"
	"net/http"

	"bookscan/internal/catalog"
	"bookscan/internal/httpx"
	"bookscan/internal/platform/logger"
	"bookscan/internal/recommend"
)

type PreferencesSource interface {
	ScorerPreferences(ctx context.Context, deviceID string) (*recommend.Preferences, error)
}

type HTTPHandler struct {
	service *Service
	prefs   PreferencesSource
	log     logger.Logger
}

func NewHTTPHandler(service *Service, prefs PreferencesSource, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, prefs: prefs, log: log}
}

// Lookup handles GET /v1/lookup/{isbn}
// @Summary Resolve a scanned ISBN
// @Description Looks the ISBN up in Google Books, then Open Library, and scores it against the device's preferences
// @Tags lookup
// @Produce json
// @Security Bearer
// @Param isbn path string true "Raw ISBN as scanned or typed"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 503 {object} httpx.ErrorResponse
// @Router /v1/lookup/{isbn} [get]
func (h *HTTPHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("isbn")

	prefs, err := h.prefs.ScorerPreferences(r.Context(), httpx.DeviceIDFrom(r))
	if err != nil {
		h.log.Error("load preferences", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}

	res, err := h.service.Lookup(r.Context(), raw, prefs)
	if err != nil {
		WriteError(w, r, h.log, raw, err)
		return
	}
	httpx.JSONSuccess(w, r, res, nil)
}

// Inspect handles GET /v1/isbn/{isbn}.
func (h *HTTPHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, Inspect(r.PathValue("isbn")), nil)
}

// WriteError maps resolver errors to API errors.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, raw string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidIdentifier):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, httpx.CodeInvalidISBN,
			"ISBN must contain 10 or 13 digits", []httpx.ErrorDetail{{Field: "isbn", Message: raw}})
	case errors.Is(err, catalog.ErrSourceUnavailable):
		log.Warn("lookup failed with unavailable catalog", logger.String("isbn", raw), logger.Error(err))
		httpx.JSONError(w, r, http.StatusServiceUnavailable, httpx.CodeCatalogUnavailable,
			"Book not found and at least one catalog could not be reached; try again later", nil)
	case errors.Is(err, catalog.ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeBookNotFound, "No catalog has a record for this ISBN", nil)
	default:
		log.Error("lookup", logger.String("isbn", raw), logger.Error(err))
		httpx.InternalError(w, r)
	}
}
