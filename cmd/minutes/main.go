package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/minutes-flow/internal/config"
	"github.com/nguyentantai21042004/minutes-flow/internal/credentials"
	"github.com/nguyentantai21042004/minutes-flow/internal/delivery"
	"github.com/nguyentantai21042004/minutes-flow/internal/document"
	"github.com/nguyentantai21042004/minutes-flow/internal/intake"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/pipeline"
	"github.com/nguyentantai21042004/minutes-flow/internal/server"
	"github.com/nguyentantai21042004/minutes-flow/internal/storage"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-flow/internal/watcher"
)

const usage = `usage: minutes [-config config.yaml] <command> [args]

commands:
  serve         start the HTTP upload endpoint
  run <file>    generate minutes for one recording into paths.output
  watch         generate minutes for every recording dropped into paths.input`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	// .env is optional, deploys use real environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}
	defer a.close()

	switch cmd := flag.Arg(0); cmd {
	case "serve":
		err = a.serve(ctx)
	case "run":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = a.runOnce(ctx, flag.Arg(1))
	case "watch":
		err = a.watch(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
}

type app struct {
	cfg       *config.Config
	log       logger.Logger
	validator *intake.Validator
	pipeline  pipeline.Pipeline
	closeFns  []func() error
}

func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	log.Info(ctx, "========================================")
	log.Info(ctx, "AI Meeting Minutes")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Project: %s (%s)", cfg.GCP.Project, cfg.GCP.Location)
	log.Info(ctx, "Bucket: %s", cfg.Storage.Bucket)
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Accepted extensions: %v", cfg.Intake.Extensions)

	creds, err := credentials.Resolve(ctx, cfg.Credentials, log)
	if err != nil {
		return nil, fmt.Errorf("resolve credentials: %w", err)
	}

	up, closeStorage, err := storage.New(ctx, cfg.Storage.Bucket, log, creds.ClientOptions()...)
	if err != nil {
		return nil, err
	}

	sum, err := summarizer.New(ctx, summarizer.VertexConfig{
		Project:     cfg.GCP.Project,
		Location:    cfg.GCP.Location,
		Model:       cfg.Gemini.Model,
		Credentials: creds.Auth,
	}, log)
	if err != nil {
		closeStorage()
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	p := pipeline.New(up, sum, pipeline.DocumentOptions{
		Labels: document.Labels{
			Title:             cfg.Document.Title,
			MinutesHeading:    cfg.Document.MinutesHeading,
			TranscriptHeading: cfg.Document.TranscriptHeading,
		},
		FilenameLabel: cfg.Document.FilenameLabel,
	}, log)

	return &app{
		cfg:       cfg,
		log:       log,
		validator: intake.NewValidator(cfg.Intake.Extensions),
		pipeline:  p,
		closeFns:  []func() error{closeStorage},
	}, nil
}

func (a *app) close() {
	for _, fn := range a.closeFns {
		if err := fn(); err != nil {
			a.log.Warn(context.Background(), "Close failed: %v", err)
		}
	}
}

func (a *app) serve(ctx context.Context) error {
	srv := server.New(a.pipeline, a.validator, a.log, a.cfg.Server.BodyLimitMB)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Listen(a.cfg.Server.Addr)
	}()

	a.log.Info(ctx, "Listening on %s (POST /api/minutes)", a.cfg.Server.Addr)

	select {
	case <-ctx.Done():
		a.log.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info(context.Background(), "Server stopped")
	return nil
}

func (a *app) runOnce(ctx context.Context, path string) error {
	r := delivery.NewFileRunner(a.pipeline, a.validator, a.cfg.Paths.Output, "", a.log)
	out, err := r.Process(ctx, path)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func (a *app) watch(ctx context.Context) error {
	if err := os.MkdirAll(a.cfg.Paths.Input, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", a.cfg.Paths.Input, err)
	}

	r := delivery.NewFileRunner(a.pipeline, a.validator, a.cfg.Paths.Output, a.cfg.Paths.Archived, a.log)
	w, err := watcher.New(a.cfg.Paths.Input, r.Handle, a.validator.Allowed, a.log)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.log.Info(ctx, "Drop recordings into %s, minutes go to %s", a.cfg.Paths.Input, a.cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	return w.Start(ctx)
}
