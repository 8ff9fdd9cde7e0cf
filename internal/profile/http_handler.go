package profile

import (
	"errors"
	"net/http"

	"bookscan/internal/httpx"
	"bookscan/internal/platform/logger"
)

type HTTPHandler struct {
	service *Service
	log     logger.Logger
}

func NewHTTPHandler(service *Service, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// Get handles GET /v1/preferences
// @Summary Get reading preferences
// @Description Returns the device's saved preferences and how complete they are
// @Tags preferences
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/preferences [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), httpx.DeviceIDFrom(r))
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "No preferences saved yet", nil)
		return
	}
	if err != nil {
		h.log.Error("get preferences", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, View{Preferences: *p, Completeness: p.Completeness()}, nil)
}

// Put handles PUT /v1/preferences
// @Summary Replace reading preferences
// @Tags preferences
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/preferences [put]
func (h *HTTPHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cmd UpdateCommand
	if !httpx.DecodeAndValidate(w, r, &cmd) {
		return
	}

	p, err := h.service.Update(r.Context(), httpx.DeviceIDFrom(r), cmd)
	if err != nil {
		h.log.Error("update preferences", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, View{Preferences: *p, Completeness: p.Completeness()}, nil)
}
