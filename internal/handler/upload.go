package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tpdocs/tpdocs/internal/service"
)

// UploadHandler handles HTTP requests for file attachments.
type UploadHandler struct {
	svc           *service.UploadService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		svc:           svc,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Create handles POST /api/uploads. Multipart form with a `file` part
// and a `belongsToId` field naming the owning record.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_MULTIPART", "Invalid multipart request body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "MISSING_FILE", "A file part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "UNREADABLE_FILE", "Could not read the uploaded file")
		return
	}

	upload, err := h.svc.CreateUpload(r.Context(), service.CreateUploadInput{
		BelongsToID: r.FormValue("belongsToId"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("upload_created",
		"upload_id", upload.ID,
		"belongs_to_id", upload.BelongsToID,
		"size", upload.Size,
	)
	writeJSON(w, http.StatusOK, upload)
}

// Get handles GET /api/uploads/{uploadId}: streams the blob back with
// its stored content type and an inline disposition carrying the
// original filename.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	upload, data, err := h.svc.GetUpload(r.Context(), chi.URLParam(r, "uploadId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", upload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", upload.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", upload.Size))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// List handles GET /api/uploads?belongsToId=: attachment metadata for
// one owner record.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	belongsToID := r.URL.Query().Get("belongsToId")
	if belongsToID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_BELONGS_TO_ID", "belongsToId query parameter is required")
		return
	}

	uploads, err := h.svc.ListUploadsByOwner(r.Context(), belongsToID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploads)
}

// Delete handles DELETE /api/uploads/{uploadId}. Returns the removed
// metadata.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	upload, err := h.svc.DeleteUpload(r.Context(), chi.URLParam(r, "uploadId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("upload_deleted", "upload_id", upload.ID)
	writeJSON(w, http.StatusOK, upload)
}
