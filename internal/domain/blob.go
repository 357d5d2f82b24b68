package domain

import (
	"context"
	"io"
)

// BlobWriter uploads data to object storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// SnapshotArchiver stores raw upstream payloads for later auditing and
// replay. Archiving is best-effort: failures are logged, never propagated.
type SnapshotArchiver interface {
	ArchiveSnapshot(ctx context.Context, source string, payload []byte) error
}
