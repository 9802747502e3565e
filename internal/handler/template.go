package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tpdocs/tpdocs/internal/handler/dto"
	"github.com/tpdocs/tpdocs/internal/service"
)

// TemplateHandler handles HTTP requests for template operations.
type TemplateHandler struct {
	svc    *service.TemplateService
	logger *slog.Logger
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(svc *service.TemplateService, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tmpl, err := h.svc.CreateTemplate(r.Context(), service.TemplateInput{
		For:           req.For,
		Type:          req.Type,
		Version:       req.Version,
		Questionnaire: req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("template_created", "template_id", tmpl.ID, "for", tmpl.For, "type", tmpl.Type)
	writeJSON(w, http.StatusOK, tmpl)
}

// List handles GET /api/templates, sorted by ascending type. The `for`
// query parameter restricts the listing to one target kind.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.svc.ListTemplates(r.Context(), r.URL.Query().Get("for"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

// Get handles GET /api/templates/{templateId}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.svc.GetTemplate(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tmpl)
}

// Update handles PUT /api/templates/{templateId}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.TemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tmpl, err := h.svc.UpdateTemplate(r.Context(), chi.URLParam(r, "templateId"), service.TemplateInput{
		For:           req.For,
		Type:          req.Type,
		Version:       req.Version,
		Questionnaire: req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tmpl)
}

// Delete handles DELETE /api/templates/{templateId}. Returns the removed
// record.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tmpl, err := h.svc.DeleteTemplate(r.Context(), chi.URLParam(r, "templateId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("template_deleted", "template_id", tmpl.ID)
	writeJSON(w, http.StatusOK, tmpl)
}
