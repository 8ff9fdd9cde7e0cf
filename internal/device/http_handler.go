package device

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

type registerReq struct {
	Platform string `json:"platform" validate:"required,oneof=web android ios cli"`
	Name     string `json:"name" validate:"max=100"`
}

// Register handles POST /v1/devices.
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	reg, err := h.service.Register(r.Context(), req.Platform, req.Name)
	if err != nil {
		h.log.Error("register device", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONCreated(w, r, reg)
}

// Me handles GET /v1/devices/me.
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Get(r.Context(), httpx.DeviceIDFrom(r))
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Device not found", nil)
		return
	}
	if err != nil {
		h.log.Error("get device", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONSuccess(w, r, d, nil)
}

// Revoke handles DELETE /v1/devices/me. The token stops working immediately.
func (h *HTTPHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	err := h.service.Revoke(r.Context(), httpx.DeviceIDFrom(r))
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, r, http.StatusNotFound, httpx.CodeNotFound, "Device not found", nil)
		return
	}
	if err != nil {
		h.log.Error("revoke device", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	httpx.JSONNoContent(w)
}
