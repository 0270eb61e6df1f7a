// Package delivery runs the pipeline for recordings on local disk and writes
// the resulting document next to the other outputs.
package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/minutes-flow/internal/document"
	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/pipeline"
)

type FileRunner struct {
	pipeline    pipeline.Pipeline
	validator   *intake.Validator
	outputDir   string
	archivedDir string // empty leaves the recording in place
	logger      logger.Logger
}

func NewFileRunner(p pipeline.Pipeline, v *intake.Validator, outputDir, archivedDir string, log logger.Logger) *FileRunner {
	return &FileRunner{
		pipeline:    p,
		validator:   v,
		outputDir:   outputDir,
		archivedDir: archivedDir,
		logger:      log,
	}
}

// Process runs one recording and returns the path of the written document.
func (r *FileRunner) Process(ctx context.Context, path string) (string, error) {
	media, err := r.validator.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("intake: %w", err)
	}

	res, err := r.pipeline.Run(ctx, media)
	if err != nil {
		return "", err
	}

	outPath, err := r.writeDocument(res.Document)
	if err != nil {
		return "", err
	}
	r.logger.Info(ctx, "Minutes written: %s", outPath)

	if r.archivedDir != "" {
		if err := r.moveToArchived(ctx, path); err != nil {
			r.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
		}
	}

	return outPath, nil
}

// Handle adapts Process to the watcher's handler signature.
func (r *FileRunner) Handle(ctx context.Context, path string) error {
	_, err := r.Process(ctx, path)
	return err
}

func (r *FileRunner) writeDocument(doc document.Rendered) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(r.outputDir, doc.Filename)
	if err := os.WriteFile(outPath, doc.Data, 0644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return outPath, nil
}

// moveToArchived moves the processed recording out of the input folder
func (r *FileRunner) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(r.archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	dest := filepath.Join(r.archivedDir, filepath.Base(path))

	r.logger.Info(ctx, "Archiving recording: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
