package service

import (
	"context"
	"errors"
	"time"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/model"
	"github.com/tpdocs/tpdocs/internal/policy"
	"github.com/tpdocs/tpdocs/internal/repository"
)

// UploadService handles file attachment business logic. Blobs live in
// the database next to their metadata.
type UploadService struct {
	repo *repository.Repository
}

// NewUploadService creates a new UploadService.
func NewUploadService(repo *repository.Repository) *UploadService {
	return &UploadService{repo: repo}
}

// CreateUploadInput defines input for storing a file attachment.
// BelongsToID names the owning entity or transaction record; it is
// stored as given and not validated against the referenced record.
type CreateUploadInput struct {
	BelongsToID string
	Filename    string
	ContentType string
	Data        []byte
}

// CreateUpload stores a file attachment.
func (s *UploadService) CreateUpload(ctx context.Context, input CreateUploadInput) (*model.Upload, error) {
	if !policy.Allow(policy.ResourceUpload, policy.VerbCreate, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	if input.BelongsToID == "" {
		return nil, ErrOwnerRequired
	}
	if input.Filename == "" {
		return nil, ErrFilenameRequired
	}
	if len(input.Data) == 0 {
		return nil, ErrEmptyFile
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload := &model.Upload{
		ID:          newID(),
		BelongsToID: input.BelongsToID,
		Filename:    input.Filename,
		ContentType: contentType,
		Size:        int64(len(input.Data)),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateUpload(ctx, upload, input.Data); err != nil {
		return nil, err
	}

	return upload, nil
}

// GetUpload returns an upload's metadata together with its payload.
func (s *UploadService) GetUpload(ctx context.Context, id string) (*model.Upload, []byte, error) {
	if !policy.Allow(policy.ResourceUpload, policy.VerbGet, auth.RolesFromContext(ctx)) {
		return nil, nil, ErrForbidden
	}

	upload, data, err := s.repo.GetUploadByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return upload, data, nil
}

// ListUploadsByOwner returns the attachment metadata for one owner
// record. An owner with no attachments yields an empty list, never an
// error.
func (s *UploadService) ListUploadsByOwner(ctx context.Context, belongsToID string) ([]*model.Upload, error) {
	if !policy.Allow(policy.ResourceUpload, policy.VerbList, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}
	return s.repo.ListUploadsByOwner(ctx, belongsToID)
}

// DeleteUpload removes an attachment and returns its metadata. Requires
// the tp role.
func (s *UploadService) DeleteUpload(ctx context.Context, id string) (*model.Upload, error) {
	if !policy.Allow(policy.ResourceUpload, policy.VerbDelete, auth.RolesFromContext(ctx)) {
		return nil, ErrForbidden
	}

	upload, err := s.repo.DeleteUpload(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUploadNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return upload, nil
}
