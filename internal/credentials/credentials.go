package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/auth"
	authcreds "cloud.google.com/go/auth/credentials"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/minutes-flow/internal/config"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Credentials is the resolved credential choice. Source is the variant that
// was actually used, which differs from the configured one after a fallback.
type Credentials struct {
	Source string
	Auth   *auth.Credentials
}

// detect is swapped in tests.
var detect = authcreds.DetectDefault

// Resolve picks the credential variant once at startup. A secret that cannot
// be loaded falls back to Application Default Credentials.
func Resolve(ctx context.Context, cfg config.CredentialsConfig, log logger.Logger) (*Credentials, error) {
	if cfg.Source == config.CredentialsSecret {
		creds, err := fromSecret(cfg.SecretsFile, cfg.SecretKey)
		if err == nil {
			log.Info(ctx, "Using service account from %s", cfg.SecretsFile)
			return creds, nil
		}
		log.Info(ctx, "Secret credentials unavailable (%v), running with default credentials", err)
	}

	creds, err := detect(&authcreds.DetectOptions{
		Scopes: []string{cloudPlatformScope},
	})
	if err != nil {
		return nil, fmt.Errorf("detect default credentials: %w", err)
	}

	log.Info(ctx, "Using application default credentials")
	return &Credentials{Source: config.CredentialsDefault, Auth: creds}, nil
}

// ClientOptions returns the options for google.golang.org/api based clients,
// sharing the credentials handed to the model client.
func (c *Credentials) ClientOptions() []option.ClientOption {
	if c.Auth == nil {
		return nil
	}
	return []option.ClientOption{option.WithAuthCredentials(c.Auth)}
}

func fromSecret(path, key string) (*Credentials, error) {
	raw, err := loadSecret(path, key)
	if err != nil {
		return nil, err
	}

	creds, err := detect(&authcreds.DetectOptions{
		Scopes:          []string{cloudPlatformScope},
		CredentialsJSON: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("parse service account: %w", err)
	}

	return &Credentials{Source: config.CredentialsSecret, Auth: creds}, nil
}

// loadSecret reads the secrets YAML file and returns the value under key
// encoded as JSON.
func loadSecret(path, key string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secrets: %w", err)
	}

	var secrets map[string]interface{}
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse secrets: %w", err)
	}

	entry, ok := secrets[key].(map[string]interface{})
	if !ok || len(entry) == 0 {
		return nil, fmt.Errorf("secret %q not found in %s", key, path)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encode secret %q: %w", key, err)
	}
	return raw, nil
}
