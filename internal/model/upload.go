// Package model defines domain entities for the application.
package model

import "time"

// Upload is the metadata of a stored file attachment. The blob itself is
// kept in the database and streamed on demand; BelongsToID references the
// owning entity or transaction and is not validated against it.
type Upload struct {
	ID          string    `json:"id"`
	BelongsToID string    `json:"belongsToId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}
