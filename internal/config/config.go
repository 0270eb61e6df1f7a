package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GCP         GCPConfig         `yaml:"gcp"`
	Storage     StorageConfig     `yaml:"storage"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Intake      IntakeConfig      `yaml:"intake"`
	Document    DocumentConfig    `yaml:"document"`
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type GCPConfig struct {
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

type StorageConfig struct {
	Bucket string `yaml:"bucket"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// CredentialsConfig selects where Google credentials come from.
// Source is "secret" (service account from SecretsFile) or "default" (ADC).
type CredentialsConfig struct {
	Source      string `yaml:"source"`
	SecretsFile string `yaml:"secrets_file"`
	SecretKey   string `yaml:"secret_key"`
}

type IntakeConfig struct {
	Extensions []string `yaml:"extensions"`
}

type DocumentConfig struct {
	Title             string `yaml:"title"`
	MinutesHeading    string `yaml:"minutes_heading"`
	TranscriptHeading string `yaml:"transcript_heading"`
	FilenameLabel     string `yaml:"filename_label"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

const (
	CredentialsSecret  = "secret"
	CredentialsDefault = "default"
)

// Load reads the YAML file at path, applies MINUTES_* environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"MINUTES_GCP_PROJECT", &c.GCP.Project},
		{"MINUTES_GCP_LOCATION", &c.GCP.Location},
		{"MINUTES_BUCKET", &c.Storage.Bucket},
		{"MINUTES_GEMINI_MODEL", &c.Gemini.Model},
		{"MINUTES_CREDENTIALS_SOURCE", &c.Credentials.Source},
		{"MINUTES_SECRETS_FILE", &c.Credentials.SecretsFile},
		{"MINUTES_SERVER_ADDR", &c.Server.Addr},
		{"MINUTES_LOG_LEVEL", &c.Logging.Level},
	}

	for _, o := range overrides {
		if v := strings.TrimSpace(getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) Validate() error {
	if c.GCP.Project == "" {
		return fmt.Errorf("gcp.project is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}

	switch c.Credentials.Source {
	case "":
		c.Credentials.Source = CredentialsSecret
	case CredentialsSecret, CredentialsDefault:
	default:
		return fmt.Errorf("credentials.source must be %q or %q, got %q",
			CredentialsSecret, CredentialsDefault, c.Credentials.Source)
	}

	if c.GCP.Location == "" {
		c.GCP.Location = "asia-northeast1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Credentials.SecretsFile == "" {
		c.Credentials.SecretsFile = ".secrets.yaml"
	}
	if c.Credentials.SecretKey == "" {
		c.Credentials.SecretKey = "gcp_service_account"
	}
	if len(c.Intake.Extensions) == 0 {
		c.Intake.Extensions = []string{".mp3", ".wav"}
	}
	for i, ext := range c.Intake.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("intake.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Intake.Extensions[i] = ext
	}
	if c.Document.Title == "" {
		c.Document.Title = "AI自動生成議事録"
	}
	if c.Document.MinutesHeading == "" {
		c.Document.MinutesHeading = "生成された議事録"
	}
	if c.Document.TranscriptHeading == "" {
		c.Document.TranscriptHeading = "文字起こし全文"
	}
	if c.Document.FilenameLabel == "" {
		c.Document.FilenameLabel = "議事録"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.BodyLimitMB <= 0 {
		c.Server.BodyLimitMB = 200
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}
