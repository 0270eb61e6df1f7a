package pipeline

import (
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/minutes-flow/internal/document"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
)

// DocumentOptions controls the fixed labels of the output document.
type DocumentOptions struct {
	Labels        document.Labels
	FilenameLabel string
}

type implPipeline struct {
	uploader   storage.Uploader
	summarizer summarizer.Summarizer
	doc        DocumentOptions
	logger     logger.Logger
	newID      func() string
}

// New creates a Pipeline instance
func New(up storage.Uploader, sum summarizer.Summarizer, doc DocumentOptions, log logger.Logger) Pipeline {
	return &implPipeline{
		uploader:   up,
		summarizer: sum,
		doc:        doc,
		logger:     log,
		newID:      uuid.NewString,
	}
}
