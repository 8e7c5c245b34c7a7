package storage

import (
	"context"
	"io"
)

// StorageProvider persists workflow attachments such as acceptance forms,
// return photos and fuel receipts. Keys are slash-separated paths scoped per
// request, e.g. "maintenance/<id>/acceptance/<file>". Objects are addressed
// by the URL returned on upload; Delete exists so a partially stored batch
// can be cleaned up.
type StorageProvider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
}

type UploadRequest struct {
	Key         string            `json:"key"`
	Reader      io.Reader         `json:"-"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	ETag string `json:"etag,omitempty"`
}
