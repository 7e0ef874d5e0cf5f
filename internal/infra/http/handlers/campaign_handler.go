package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

type CampaignHandler struct {
	uc     *usecase.CampaignUseCase
	logger *zap.Logger
}

func NewCampaignHandler(uc *usecase.CampaignUseCase, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{uc: uc, logger: logger}
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.uc.Campaigns.List(r.Context())
	if err != nil {
		h.logger.Error("list campaigns", zap.Error(err))
		writeError(w, http.StatusInternalServerError, usecase.CodeDatabaseError, "Could not load campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []entity.Campaign{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.uc.Campaigns.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrCampaignNotFound) {
			writeError(w, http.StatusNotFound, usecase.CodeCampaignNotFound, "campaign not found")
			return
		}
		h.logger.Error("load campaign", zap.Error(err))
		writeError(w, http.StatusInternalServerError, usecase.CodeDatabaseError, "Could not load campaign")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}

	c, err := h.uc.Create(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CampaignHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, out)
}
