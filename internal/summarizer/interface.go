package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
)

// Summarizer turns an uploaded recording into a transcript, and a transcript
// prompt into meeting minutes.
type Summarizer interface {
	Transcribe(ctx context.Context, ref storage.ObjectReference, mimeType string) (string, error)
	Synthesize(ctx context.Context, prompt string) (string, error)
}
