package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tpdocs/tpdocs/internal/model"
)

// Common errors for upload repository operations.
var (
	ErrUploadNotFound = errors.New("upload not found")
)

const uploadColumns = `id, belongs_to_id, filename, content_type, size, created_at`

// CreateUpload inserts a new upload record together with its binary payload.
func (r *Repository) CreateUpload(ctx context.Context, upload *model.Upload, data []byte) error {
	query := `
		INSERT INTO uploads (id, belongs_to_id, filename, content_type, size, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		upload.ID,
		upload.BelongsToID,
		upload.Filename,
		upload.ContentType,
		upload.Size,
		data,
		upload.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create upload: %w", err)
	}

	return nil
}

// GetUploadByID retrieves an upload's metadata and binary payload.
func (r *Repository) GetUploadByID(ctx context.Context, id string) (*model.Upload, []byte, error) {
	query := `SELECT ` + uploadColumns + `, data FROM uploads WHERE id = $1`

	var upload model.Upload
	var data []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&upload.ID,
		&upload.BelongsToID,
		&upload.Filename,
		&upload.ContentType,
		&upload.Size,
		&upload.CreatedAt,
		&data,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrUploadNotFound
		}
		return nil, nil, fmt.Errorf("failed to get upload by ID: %w", err)
	}

	return &upload, data, nil
}

// ListUploadsByOwner retrieves the metadata of all uploads attached to the
// given owner record, sorted by descending creation time.
func (r *Repository) ListUploadsByOwner(ctx context.Context, belongsToID string) ([]*model.Upload, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE belongs_to_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, belongsToID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	uploads := []*model.Upload{}
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating uploads: %w", err)
	}

	return uploads, nil
}

// DeleteUpload removes an upload and returns its metadata.
func (r *Repository) DeleteUpload(ctx context.Context, id string) (*model.Upload, error) {
	query := `DELETE FROM uploads WHERE id = $1 RETURNING ` + uploadColumns

	upload, err := scanUpload(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to delete upload: %w", err)
	}

	return upload, nil
}

// scanUpload scans an upload metadata row.
func scanUpload(row pgx.Row) (*model.Upload, error) {
	var upload model.Upload
	err := row.Scan(
		&upload.ID,
		&upload.BelongsToID,
		&upload.Filename,
		&upload.ContentType,
		&upload.Size,
		&upload.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &upload, nil
}
