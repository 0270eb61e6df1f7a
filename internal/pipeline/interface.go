package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
)

// Pipeline runs one recording through upload, transcription, synthesis and
// rendering.
type Pipeline interface {
	Run(ctx context.Context, media intake.Media) (*Result, error)
}
