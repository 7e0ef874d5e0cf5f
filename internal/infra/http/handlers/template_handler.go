package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
	"github.com/xavierca1/leadlocal/internal/templating"
	"github.com/xavierca1/leadlocal/internal/usecase"
)

type TemplateHandler struct {
	catalog usecase.TemplateCatalog
	render  *usecase.RenderTemplateUseCase
	logger  *zap.Logger
}

func NewTemplateHandler(catalog usecase.TemplateCatalog, render *usecase.RenderTemplateUseCase, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{catalog: catalog, render: render, logger: logger}
}

// List supports ?type=email|linkedin|sms|call-script.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates := h.catalog.List(entity.TemplateType(r.URL.Query().Get("type")))
	if templates == nil {
		templates = []entity.Template{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, templating.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, usecase.CodeTemplateNotFound, "template not found")
			return
		}
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

func (h *TemplateHandler) Render(w http.ResponseWriter, r *http.Request) {
	var input usecase.RenderTemplateInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.TemplateID = chi.URLParam(r, "id")

	out, err := h.render.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
