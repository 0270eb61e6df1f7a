package pipeline

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/minutes-flow/internal/document"
	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
)

// Result holds everything a successful run produced.
type Result struct {
	RunID      string
	Object     storage.ObjectReference
	Transcript string
	Minutes    string
	Document   document.Rendered
}

// Run executes the stages in order. The first failure aborts the run and no
// partial result is returned.
func (p *implPipeline) Run(ctx context.Context, media intake.Media) (*Result, error) {
	startTime := time.Now()
	runID := p.newID()
	ctx = logger.WithRunID(ctx, runID)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting minutes generation: %s (%s, %d bytes)", media.Filename, media.MIMEType, len(media.Data))
	p.logger.Info(ctx, "========================================")

	// Step 1: Upload to the object store
	p.logger.Info(ctx, "[%s] Uploading recording to cloud storage...", StageUpload)
	ref, err := p.uploader.Upload(ctx, media)
	if err != nil {
		return nil, p.fail(ctx, StageUpload, err)
	}
	p.logger.Info(ctx, "[%s] Upload complete: %s", StageUpload, ref.URI)

	// Step 2: Transcribe the uploaded object
	p.logger.Info(ctx, "[%s] Transcribing audio, this can take several minutes...", StageTranscribe)
	transcript, err := p.summarizer.Transcribe(ctx, ref, media.MIMEType)
	if err != nil {
		return nil, p.fail(ctx, StageTranscribe, err)
	}
	p.logger.Info(ctx, "[%s] Transcript ready (%d chars)", StageTranscribe, len([]rune(transcript)))
	p.logger.Debug(ctx, "Transcript:\n%s", transcript)

	// Step 3: Synthesize minutes from the transcript
	p.logger.Info(ctx, "[%s] Generating minutes...", StageSynthesize)
	minutes, err := p.summarizer.Synthesize(ctx, summarizer.MinutesPrompt(transcript))
	if err != nil {
		return nil, p.fail(ctx, StageSynthesize, err)
	}
	p.logger.Info(ctx, "[%s] Minutes ready (%d lines)", StageSynthesize, len(document.Lines(minutes)))
	p.logger.Debug(ctx, "Minutes:\n%s", minutes)

	// Step 4: Render the Word document
	p.logger.Info(ctx, "[%s] Building Word document...", StageRender)
	rendered, err := document.Build(p.doc.Labels, p.doc.FilenameLabel, media.Filename, minutes, transcript)
	if err != nil {
		return nil, p.fail(ctx, StageRender, err)
	}
	p.logger.Info(ctx, "[%s] Document ready: %s (%d bytes)", StageRender, rendered.Filename, len(rendered.Data))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Minutes generated successfully in %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return &Result{
		RunID:      runID,
		Object:     ref,
		Transcript: transcript,
		Minutes:    minutes,
		Document:   rendered,
	}, nil
}

func (p *implPipeline) fail(ctx context.Context, stage Stage, err error) error {
	p.logger.Error(ctx, "[%s] Failed: %v", stage, err)
	return &StageError{Stage: stage, Err: err}
}
