package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/infra/http/middleware"
	"github.com/xavierca1/leadlocal/internal/search"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

type SearchHandler struct {
	uc     *usecase.SearchLeadsUseCase
	logger *zap.Logger
}

func NewSearchHandler(uc *usecase.SearchLeadsUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{uc: uc, logger: logger}
}

func (h *SearchHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.uc.Execute(r.Context(), req)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordSearch("failed", 0)
		}
		writeUseCaseError(w, h.logger, err)
		return
	}

	for _, warn := range out.Warnings {
		if warn.Provider == usecase.WarningLeadStore {
			middleware.RecordLeadStoreFailure()
			continue
		}
		middleware.RecordProviderFailure(warn.Provider)
	}
	middleware.RecordSearch("ok", len(out.Leads))

	writeJSON(w, http.StatusOK, out)
}
