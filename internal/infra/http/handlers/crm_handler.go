package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/usecase"
)

type CRMHandler struct {
	uc     *usecase.SyncCRMUseCase
	logger *zap.Logger
}

func NewCRMHandler(uc *usecase.SyncCRMUseCase, logger *zap.Logger) *CRMHandler {
	return &CRMHandler{uc: uc, logger: logger}
}

func (h *CRMHandler) SyncKommo(w http.ResponseWriter, r *http.Request) {
	var input usecase.SyncCRMInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.uc.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
