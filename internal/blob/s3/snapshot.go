package s3blob

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
)

// multipartThreshold is the payload size above which snapshots switch to
// multipart upload. The bulk disclosure feed regularly exceeds this.
const multipartThreshold = 16 * 1024 * 1024

// SnapshotArchiver implements domain.SnapshotArchiver by writing each raw
// upstream payload to raw/<source>/<timestamp>.json.
type SnapshotArchiver struct {
	writer *Writer
}

// NewSnapshotArchiver creates a SnapshotArchiver over the given client.
func NewSnapshotArchiver(c *Client) *SnapshotArchiver {
	return &SnapshotArchiver{writer: NewWriter(c)}
}

// ArchiveSnapshot stores one raw payload under a timestamped key.
func (a *SnapshotArchiver) ArchiveSnapshot(ctx context.Context, source string, payload []byte) error {
	key := fmt.Sprintf("raw/%s/%s.json", source, time.Now().UTC().Format(time.RFC3339))

	if int64(len(payload)) > multipartThreshold {
		return a.writer.PutMultipart(ctx, key, bytes.NewReader(payload), minPartSize)
	}
	return a.writer.Put(ctx, key, bytes.NewReader(payload), "application/json")
}

// Compile-time interface check.
var _ domain.SnapshotArchiver = (*SnapshotArchiver)(nil)
