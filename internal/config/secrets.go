package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type secretPayload struct {
	AuthSecret string `json:"auth_secret"`
}

// NewSecretsClient builds a client from the default AWS credential chain.
// A non-empty endpoint overrides the service URL (LocalStack).
func NewSecretsClient(ctx context.Context, endpoint string) (*secretsmanager.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// ResolveSecrets overlays values stored in the SecretsID secret onto cfg.
// It is a no-op when SecretsID is empty.
func ResolveSecrets(ctx context.Context, cfg Config, client SecretsManagerAPI) (Config, error) {
	if cfg.SecretsID == "" {
		return cfg, nil
	}
	if client == nil {
		return cfg, errors.New("secrets client is required when SECRETS_ID is set")
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.SecretsID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return cfg, fmt.Errorf("secret %s not found: %w", cfg.SecretsID, err)
		}
		return cfg, fmt.Errorf("get secret %s: %w", cfg.SecretsID, err)
	}
	if out.SecretString == nil {
		return cfg, fmt.Errorf("secret %s has no string value", cfg.SecretsID)
	}

	var payload secretPayload
	if err := json.Unmarshal([]byte(*out.SecretString), &payload); err != nil {
		return cfg, fmt.Errorf("decode secret %s: %w", cfg.SecretsID, err)
	}
	if secret := strings.TrimSpace(payload.AuthSecret); secret != "" {
		cfg.AuthSecret = secret
		log.Printf("[config] auth secret loaded from %s", cfg.SecretsID)
	}
	return cfg, nil
}
