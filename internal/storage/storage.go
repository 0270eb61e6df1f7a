package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
)

const timestampLayout = "20060102-150405"

// ObjectName returns "<YYYYMMDD-HHMMSS>-<filename>".
func ObjectName(t time.Time, filename string) string {
	return t.Format(timestampLayout) + "-" + filename
}

// URI returns the gs:// reference for an object.
func URI(bucket, name string) string {
	return "gs://" + bucket + "/" + name
}

// Upload stores the media bytes under a timestamped name.
func (u *implUploader) Upload(ctx context.Context, media intake.Media) (ObjectReference, error) {
	name := ObjectName(u.now(), media.Filename)

	u.logger.Debug(ctx, "Writing %d bytes to bucket %s as %s (%s)", len(media.Data), u.bucket, name, media.MIMEType)

	w := u.writer.NewWriter(ctx, u.bucket, name, media.MIMEType)
	if _, err := io.Copy(w, bytes.NewReader(media.Data)); err != nil {
		w.Close()
		return ObjectReference{}, fmt.Errorf("write object %s: %w", name, err)
	}
	// The object is only committed on Close.
	if err := w.Close(); err != nil {
		return ObjectReference{}, fmt.Errorf("close object %s: %w", name, err)
	}

	return ObjectReference{
		Bucket: u.bucket,
		Name:   name,
		URI:    URI(u.bucket, name),
	}, nil
}
