package feedback

import (
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

// Submit handles POST /v1/feedback
// @Summary Send beta feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/feedback [post]
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd SubmitCommand
	if !httpx.DecodeAndValidate(w, r, &cmd) {
		return
	}

	f, err := h.service.Submit(r.Context(), httpx.DeviceIDFrom(r), r.UserAgent(), cmd)
	if err != nil {
		h.log.Error("store feedback", logger.String("type", cmd.Type), logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	h.log.Info("feedback received",
		logger.String("type", f.Type),
		logger.String("severity", f.Severity),
		logger.String("feature", f.Feature),
	)
	httpx.JSONCreated(w, r, f)
}
