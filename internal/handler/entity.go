package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tpdocs/tpdocs/internal/handler/dto"
	"github.com/tpdocs/tpdocs/internal/service"
)

// EntityHandler handles HTTP requests for entity operations.
type EntityHandler struct {
	svc     *service.EntityService
	uploads *service.UploadService
	logger  *slog.Logger
}

// NewEntityHandler creates a new EntityHandler. The upload service backs
// the per-entity attachments listing.
func NewEntityHandler(svc *service.EntityService, uploads *service.UploadService, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{
		svc:     svc,
		uploads: uploads,
		logger:  logger,
	}
}

// Create handles POST /api/entities.
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entity, err := h.svc.CreateEntity(r.Context(), service.EntityInput{
		Name:                  req.Name,
		Shortname:             req.Shortname,
		Type:                  req.Type,
		Country:               req.Country,
		ParentReportingEntity: req.ParentReportingEntity,
		Questionnaire:         req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("entity_created", "entity_id", entity.ID, "country", entity.Country)
	writeJSON(w, http.StatusOK, entity)
}

// List handles GET /api/entities. Returns the condensed projection.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	items, err := h.svc.ListEntities(r.Context(), skip, limit)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/entities/{entityId}.
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity, err := h.svc.GetEntity(r.Context(), chi.URLParam(r, "entityId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

// Update handles PUT /api/entities/{entityId}.
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.EntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	entity, err := h.svc.UpdateEntity(r.Context(), chi.URLParam(r, "entityId"), service.EntityInput{
		Name:                  req.Name,
		Shortname:             req.Shortname,
		Type:                  req.Type,
		Country:               req.Country,
		ParentReportingEntity: req.ParentReportingEntity,
		Questionnaire:         req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

// Delete handles DELETE /api/entities/{entityId}. Returns the removed
// record.
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entity, err := h.svc.DeleteEntity(r.Context(), chi.URLParam(r, "entityId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("entity_deleted", "entity_id", entity.ID)
	writeJSON(w, http.StatusOK, entity)
}

// Attachments handles GET /api/entities/{entityId}/attachments: the
// metadata of all uploads owned by the entity.
func (h *EntityHandler) Attachments(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.uploads.ListUploadsByOwner(r.Context(), chi.URLParam(r, "entityId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploads)
}
