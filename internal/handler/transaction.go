package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tpdocs/tpdocs/internal/handler/dto"
	"github.com/tpdocs/tpdocs/internal/repository"
	"github.com/tpdocs/tpdocs/internal/service"
)

// TransactionHandler handles HTTP requests for transaction operations.
type TransactionHandler struct {
	svc    *service.TransactionService
	logger *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc *service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), service.TransactionInput{
		Name:             req.Name,
		Type:             req.Type,
		Begin:            req.Begin,
		End:              req.End,
		PersonsOfContact: req.PersonsOfContact,
		Entities:         req.Entities,
		Questionnaire:    req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("transaction_created", "transaction_id", tx.ID, "participants", len(tx.Entities))
	writeJSON(w, http.StatusOK, tx)
}

// List handles GET /api/transactions. Query filters: `entities` is a
// comma-separated set of entity IDs matched any-of against the
// participants; `type` matches the participants' type.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	query := r.URL.Query()

	filter := repository.TransactionFilter{
		ParticipantType: query.Get("type"),
	}
	if raw := query.Get("entities"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.EntityIDs = append(filter.EntityIDs, id)
			}
		}
	}

	items, err := h.svc.ListTransactions(r.Context(), filter, skip, limit)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/transactions/{transactionId}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.GetTransaction(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// Update handles PUT /api/transactions/{transactionId}.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	tx, err := h.svc.UpdateTransaction(r.Context(), chi.URLParam(r, "transactionId"), service.TransactionInput{
		Name:             req.Name,
		Type:             req.Type,
		Begin:            req.Begin,
		End:              req.End,
		PersonsOfContact: req.PersonsOfContact,
		Entities:         req.Entities,
		Questionnaire:    req.Questionnaire,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// Delete handles DELETE /api/transactions/{transactionId}. Returns the
// removed record.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.DeleteTransaction(r.Context(), chi.URLParam(r, "transactionId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("transaction_deleted", "transaction_id", tx.ID)
	writeJSON(w, http.StatusOK, tx)
}
