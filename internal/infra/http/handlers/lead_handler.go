package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

type LeadHandler struct {
	leadRepo entity.LeadRepositoryInterface
	insights *usecase.GenerateInsightsUseCase
	logger   *zap.Logger
}

// NewLeadHandler accepts a nil repository; the endpoints then answer 503.
func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, insights *usecase.GenerateInsightsUseCase, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{leadRepo: leadRepo, insights: insights, logger: logger}
}

type UpdateStatusRequest struct {
	Status entity.LeadStatus `json:"status"`
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.storeReady(w) {
		return
	}

	q := r.URL.Query()
	filter := entity.LeadFilter{
		Status:   entity.LeadStatus(q.Get("status")),
		Industry: q.Get("industry"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "unknown status")
		return
	}
	for name, dst := range map[string]*int{"min_score": &filter.MinScore, "limit": &filter.Limit, "offset": &filter.Offset} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, usecase.CodeValidation, name+" must be a non-negative integer")
				return
			}
			*dst = n
		}
	}

	leads, err := h.leadRepo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list leads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, usecase.CodeDatabaseError, "Could not load leads")
		return
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.storeReady(w) {
		return
	}

	lead, err := h.leadRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeLeadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !h.storeReady(w) {
		return
	}

	var req UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.leadRepo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.writeLeadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
}

// UpdateContact edits email, phone or website. Omitted fields are kept and
// an empty string clears one.
func (h *LeadHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	if !h.storeReady(w) {
		return
	}

	var req entity.LeadContact
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Empty() {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "email, phone or website is required")
		return
	}
	for _, f := range []*string{req.Email, req.Phone, req.Website} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
	if req.Email != nil && *req.Email != "" {
		addr, err := mail.ParseAddress(*req.Email)
		if err != nil {
			writeError(w, http.StatusBadRequest, usecase.CodeValidation, "invalid email")
			return
		}
		*req.Email = addr.Address
	}

	id := chi.URLParam(r, "id")
	if err := h.leadRepo.UpdateContact(r.Context(), id, req); err != nil {
		h.writeLeadError(w, err)
		return
	}

	lead, err := h.leadRepo.FindByID(r.Context(), id)
	if err != nil {
		h.writeLeadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) GenerateInsights(w http.ResponseWriter, r *http.Request) {
	lead, err := h.insights.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) storeReady(w http.ResponseWriter) bool {
	if h.leadRepo == nil {
		writeError(w, http.StatusServiceUnavailable, usecase.CodeFeatureUnavailable, "lead store is not configured")
		return false
	}
	return true
}

func (h *LeadHandler) writeLeadError(w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, usecase.CodeLeadNotFound, "lead not found")
		return
	}
	h.logger.Error("lead store", zap.Error(err))
	writeError(w, http.StatusInternalServerError, usecase.CodeDatabaseError, "Could not load lead")
}
