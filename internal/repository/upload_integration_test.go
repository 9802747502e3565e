//go:build integration

package repository

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tpdocs/tpdocs/internal/model"
)

func newTestUpload(belongsToID, filename string) (*model.Upload, []byte) {
	data := []byte("%PDF-1.4 test payload")
	return &model.Upload{
		ID:          ulid.Make().String(),
		BelongsToID: belongsToID,
		Filename:    filename,
		ContentType: "application/pdf",
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}, data
}

func TestIntegrationUploadRepository_BlobRoundtrip(t *testing.T) {
	ctx, repo := newTestEnv(t, "000005_uploads")

	upload, data := newTestUpload("01HOWNER", "report.pdf")
	if err := repo.CreateUpload(ctx, upload, data); err != nil {
		t.Fatalf("CreateUpload failed: %v", err)
	}

	retrieved, blob, err := repo.GetUploadByID(ctx, upload.ID)
	if err != nil {
		t.Fatalf("GetUploadByID failed: %v", err)
	}
	if !bytes.Equal(blob, data) {
		t.Error("blob payload corrupted in roundtrip")
	}
	if retrieved.Filename != "report.pdf" || retrieved.ContentType != "application/pdf" {
		t.Errorf("metadata mismatch: %+v", retrieved)
	}
	if retrieved.Size != int64(len(data)) {
		t.Errorf("size mismatch: got %d, want %d", retrieved.Size, len(data))
	}
}

func TestIntegrationUploadRepository_ListByOwner(t *testing.T) {
	ctx, repo := newTestEnv(t, "000005_uploads")

	first, data1 := newTestUpload("01HOWNER", "a.pdf")
	second, data2 := newTestUpload("01HOWNER", "b.pdf")
	other, data3 := newTestUpload("01HOTHER", "c.pdf")

	for _, pair := range []struct {
		upload *model.Upload
		data   []byte
	}{{first, data1}, {second, data2}, {other, data3}} {
		if err := repo.CreateUpload(ctx, pair.upload, pair.data); err != nil {
			t.Fatalf("CreateUpload failed: %v", err)
		}
	}

	uploads, err := repo.ListUploadsByOwner(ctx, "01HOWNER")
	if err != nil {
		t.Fatalf("ListUploadsByOwner failed: %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(uploads))
	}

	empty, err := repo.ListUploadsByOwner(ctx, "01HNOBODY")
	if err != nil {
		t.Fatalf("ListUploadsByOwner failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no uploads, got %d", len(empty))
	}
}

func TestIntegrationUploadRepository_DeleteReturnsMetadata(t *testing.T) {
	ctx, repo := newTestEnv(t, "000005_uploads")

	upload, data := newTestUpload("01HOWNER", "gone.pdf")
	if err := repo.CreateUpload(ctx, upload, data); err != nil {
		t.Fatalf("CreateUpload failed: %v", err)
	}

	deleted, err := repo.DeleteUpload(ctx, upload.ID)
	if err != nil {
		t.Fatalf("DeleteUpload failed: %v", err)
	}
	if deleted.Filename != "gone.pdf" {
		t.Errorf("metadata mismatch: %+v", deleted)
	}

	if _, _, err := repo.GetUploadByID(ctx, upload.ID); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Expected ErrUploadNotFound after delete, got: %v", err)
	}
}
