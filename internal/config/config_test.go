package config

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	assert.Empty(t, cfg.AuthSecret)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TAX_RATE_PERCENT", "REPORT_TIMEZONE", "SUMMARY_CACHE_TTL_SECONDS", "SEED_DEMO_SALES", "SECRETS_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, "7", cfg.TaxRatePercent.String())
	assert.Equal(t, 60, cfg.SummaryCacheTTLSeconds)
	assert.False(t, cfg.SeedDemoSales)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TAX_RATE_PERCENT", "11.5")
	t.Setenv("SUMMARY_CACHE_TTL_SECONDS", "-3")
	t.Setenv("SEED_DEMO_SALES", "true")
	t.Setenv("REPORT_TIMEZONE", "Asia/Jakarta")

	cfg := Load()
	assert.Equal(t, "11.5", cfg.TaxRatePercent.String())
	assert.Equal(t, 60, cfg.SummaryCacheTTLSeconds)
	assert.True(t, cfg.SeedDemoSales)
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())
}

func TestLoadRejectsNegativeTaxRate(t *testing.T) {
	t.Setenv("TAX_RATE_PERCENT", "-1")
	assert.Equal(t, "7", Load().TaxRatePercent.String())
}

type stubSecrets struct {
	value *string
	err   error
	asked string
}

func (s *stubSecrets) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	s.asked = aws.ToString(params.SecretId)
	if s.err != nil {
		return nil, s.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: s.value}, nil
}

func TestResolveSecretsNoopWithoutID(t *testing.T) {
	cfg, err := ResolveSecrets(context.Background(), Config{AuthSecret: "keep"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "keep", cfg.AuthSecret)
}

func TestResolveSecretsOverlaysAuthSecret(t *testing.T) {
	client := &stubSecrets{value: aws.String(`{"auth_secret":"0123456789abcdef0123456789abcdef"}`)}

	cfg, err := ResolveSecrets(context.Background(), Config{SecretsID: "pos/prod", AuthSecret: "env"}, client)
	require.NoError(t, err)
	assert.Equal(t, "pos/prod", client.asked)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.AuthSecret)
}

func TestResolveSecretsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := ResolveSecrets(ctx, Config{SecretsID: "x"}, nil)
	assert.Error(t, err)

	_, err = ResolveSecrets(ctx, Config{SecretsID: "x"}, &stubSecrets{err: errors.New("denied")})
	assert.ErrorContains(t, err, "denied")

	_, err = ResolveSecrets(ctx, Config{SecretsID: "x"}, &stubSecrets{})
	assert.ErrorContains(t, err, "no string value")

	_, err = ResolveSecrets(ctx, Config{SecretsID: "x"}, &stubSecrets{value: aws.String("not json")})
	assert.ErrorContains(t, err, "decode secret")
}
