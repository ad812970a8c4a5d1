// Package storage abstracts the binary blob store holding sauce images.
// Two backends are provided: local disk (images served statically under
// /images/) and an S3-compatible object store.
package storage

import "context"

// ImageStore stores and releases image blobs keyed by an opaque reference.
//
// Save and Release for the same reference never race: a reference is only
// released after the record pointing at it has stopped referencing it.
// Distinct references are independent.
type ImageStore interface {
	// Save persists the image bytes and returns the opaque reference.
	// The original filename is used only to preserve the extension.
	Save(ctx context.Context, filename string, data []byte) (string, error)

	// URL resolves a reference to a location a client can fetch.
	URL(ctx context.Context, key string) (string, error)

	// Release removes the stored blob. Releasing a reference that no longer
	// exists is not an error.
	Release(ctx context.Context, key string) error
}
