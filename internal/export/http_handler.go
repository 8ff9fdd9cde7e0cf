package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookscan/internal/httpx"
	"bookscan/internal/library"
	"bookscan/internal/platform/logger"
)

type LibrarySource interface {
	All(ctx context.Context, deviceID string) ([]library.Entry, error)
}

type HTTPHandler struct {
	library LibrarySource
	log     logger.Logger
	now     func() time.Time
}

func NewHTTPHandler(lib LibrarySource, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{library: lib, log: log, now: time.Now}
}

// Export handles GET /v1/export
// @Summary Download the library
// @Tags export
// @Produce text/csv,application/json,text/html
// @Security Bearer
// @Param format query string false "csv, json, html or xlsx"
// @Param filter query string false "all, read, reading, to-read or favorites"
// @Param metadata query bool false "Include genres, pages and publication date"
// @Param ratings query bool false "Include personal and average ratings"
// @Param notes query bool false "Include the personal review"
// @Success 200 {file} file
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/export [get]
func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, err.Error(), nil)
		return
	}
	if details := httpx.ValidateStruct(opts); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeValidation, "Invalid export options", details)
		return
	}

	entries, err := h.library.All(r.Context(), httpx.DeviceIDFrom(r))
	if err != nil {
		h.log.Error("load library for export", logger.Error(err))
		httpx.InternalError(w, r)
		return
	}
	entries = Select(entries, opts.Filter)

	now := h.now()
	var buf bytes.Buffer
	if err := Write(&buf, entries, opts, now); err != nil {
		h.log.Error("render export", logger.String("format", opts.Format), logger.Error(err))
		httpx.InternalError(w, r)
		return
	}

	w.Header().Set("Content-Type", ContentType(opts.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(opts.Format, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseOptions(q url.Values) (Options, error) {
	opts := DefaultOptions()
	if v := q.Get("format"); v != "" {
		opts.Format = v
	}
	if v := q.Get("filter"); v != "" {
		opts.Filter = v
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"metadata", &opts.Metadata},
		{"ratings", &opts.Ratings},
		{"notes", &opts.Notes},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%s must be true or false", f.name)
		}
		*f.dst = b
	}
	return opts, nil
}
