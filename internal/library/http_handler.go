package library

import (
	"context"
	"errors"
	"net/http"
	"strconv"

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

// Add handles POST /v1/library
// @Summary Add a scanned book to the library
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/library [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	var cmd AddCommand
	if !httpx.DecodeAndValidate(w, r, &cmd) {
		return
	}

	deviceID := httpx.DeviceIDFrom(r)
	prefs, err := h.prefs.ScorerPreferences(r.Context(), deviceID)
	if err != nil {
		h.log.Error("load preferences", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}

	e, err := h.service.Add(r.Context(), deviceID, cmd, prefs)
	if err != nil {
		h.log.Error("add library entry", logger.String("isbn", cmd.ISBN), logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONCreated(w, r, e)
}

// List handles GET /v1/library
// @Summary List the library
// @Tags library
// @Produce json
// @Security Bearer
// @Param q query string false "Title or author search"
// @Param filter query string false "all, rated, unrated or high-rated"
// @Param sort query string false "date, title, author or rating"
// @Param status query string false "want-to-read, reading or read"
// @Param limit query int false "Page size, 0 for everything"
// @Param cursor query string false "next_cursor of the previous page"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/library [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := ListQuery{
		Search: params.Get("q"),
		Filter: params.Get("filter"),
		Sort:   params.Get("sort"),
		Status: params.Get("status"),
		Cursor: params.Get("cursor"),
	}
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "limit must be a number", nil)
			return
		}
		q.Limit = n
	}
	if details := httpx.ValidateStruct(q); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "Invalid query parameters", details)
		return
	}

	page, err := h.service.List(r.Context(), httpx.DeviceIDFrom(r), q)
	if errors.Is(err, ErrInvalidCursor) {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "Invalid cursor", nil)
		return
	}
	if err != nil {
		h.log.Error("list library", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}

	meta := map[string]any{"count": len(page.Entries), "total": page.Total}
	if page.NextCursor != "" {
		meta["next_cursor"] = page.NextCursor
	}
	httpx.JSONSuccess(w, r, page.Entries, meta)
}

// Get handles GET /v1/library/{id}
// @Summary Get one library entry
// @Tags library
// @Produce json
// @Security Bearer
// @Param id path string true "Entry ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Get(r.Context(), httpx.DeviceIDFrom(r), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, "get library entry", err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Update handles PATCH /v1/library/{id}
// @Summary Rate, review or change the status of an entry
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Entry ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/{id} [patch]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if !httpx.DecodeAndValidate(w, r, &cmd) {
		return
	}

	e, err := h.service.Update(r.Context(), httpx.DeviceIDFrom(r), r.PathValue("id"), cmd)
	if err != nil {
		h.writeError(w, r, "update library entry", err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Delete handles DELETE /v1/library/{id}
// @Summary Remove an entry
// @Tags library
// @Security Bearer
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httpx.DeviceIDFrom(r), r.PathValue("id")); err != nil {
		h.writeError(w, r, "delete library entry", err)
		return
	}
	httpx.JSONNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Library entry not found", nil)
		return
	}
	h.log.Error(op, logger.Error(err))
	httpx.InternalError(w, r)
}
