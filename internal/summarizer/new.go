package summarizer

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

// contentGenerator is the part of *genai.Models the summarizer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type implSummarizer struct {
	models contentGenerator
	model  string
	logger logger.Logger
}

// VertexConfig addresses the Vertex AI endpoint. Credentials may be nil to use
// Application Default Credentials.
type VertexConfig struct {
	Project     string
	Location    string
	Model       string
	Credentials *auth.Credentials
}

// New creates a Gemini-backed Summarizer on Vertex AI.
func New(ctx context.Context, cfg VertexConfig, log logger.Logger) (Summarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     cfg.Project,
		Location:    cfg.Location,
		Credentials: cfg.Credentials,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &implSummarizer{
		models: client.Models,
		model:  cfg.Model,
		logger: log,
	}, nil
}
