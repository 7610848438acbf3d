package export

import (
	"bytes"
	"net/http"
	"strconv"

	"bookshelf/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	exporter *Exporter
	log      *zap.Logger
}

func NewHTTPHandler(exporter *Exporter, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{exporter: exporter, log: log}
}

// Download handles GET /v1/books/export
// @Summary Download the collection as XLSX
// @Tags books
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books/export [get]
func (h *HTTPHandler) Download(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exporter.ExportAll(r.Context(), &buf); err != nil {
		h.log.Error("export failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
