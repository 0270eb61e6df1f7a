package storage

import (
	"context"

	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
)

// Uploader writes recordings to the object store.
type Uploader interface {
	Upload(ctx context.Context, media intake.Media) (ObjectReference, error)
}

// ObjectReference identifies an uploaded object.
type ObjectReference struct {
	Bucket string
	Name   string
	URI    string
}
