package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/export"
	"github.com/xavierca1/leadlocal/internal/infra/http/middleware"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

type ExportHandler struct {
	uc     *usecase.ExportLeadsUseCase
	logger *zap.Logger
}

func NewExportHandler(uc *usecase.ExportLeadsUseCase, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, logger: logger}
}

// Handle streams the export as an attachment. With ?archive=true the file
// is also stored and its key returned in X-Archive-Key.
func (h *ExportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.ExportLeadsInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if v := r.URL.Query().Get("format"); v != "" {
		input.Format = v
	}
	if v := r.URL.Query().Get("archive"); v != "" {
		archive, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, usecase.CodeValidation, "archive must be a boolean")
			return
		}
		input.Archive = archive
	}

	label := "unsupported"
	if format, err := export.ParseFormat(input.Format); err == nil {
		label = string(format)
	}

	out, err := h.uc.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordExport(label, "failed")
		writeUseCaseError(w, h.logger, err)
		return
	}
	middleware.RecordExport(label, "ok")

	w.Header().Set("Content-Type", out.File.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.File.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.File.Data)))
	if out.ArchiveKey != "" {
		w.Header().Set("X-Archive-Key", out.ArchiveKey)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(out.File.Data)
}
