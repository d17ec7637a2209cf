package billing

import "context"

// AttachmentStorage stores invoice attachments and hands back a URL.
// Implemented by the S3-compatible object storage and the local stub.
type AttachmentStorage interface {
	// Upload stores the bytes under the given key and returns a URL the
	// frontend can load the file from.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes a stored object
	Delete(ctx context.Context, key string) error
}
