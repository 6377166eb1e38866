package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meesho-recon/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-test-secret")
	t.Setenv("GIN_MODE", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("VOCABULARY_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "a-test-secret", cfg.Session.Secret)
	assert.Equal(t, int64(120)<<20, cfg.Ingest.MaxUploadBytes())
	assert.Equal(t, 60*time.Minute, cfg.Session.IdleTimeout)
	assert.True(t, cfg.App.PerUnitCost.IsZero())
	assert.Equal(t, 7, cfg.Vocabulary.HeaderOffset("returns"))
}

func TestLoad_SessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("GIN_MODE", "release")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("GIN_MODE", "")
	_, err = Load()
	assert.Error(t, err, "release is the default mode")

	t.Setenv("GIN_MODE", "debug")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devSessionSecret, cfg.Session.Secret)

	t.Setenv("SESSION_SECRET", "operator-secret")
	t.Setenv("GIN_MODE", "release")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "operator-secret", cfg.Session.Secret)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", "a-test-secret")
	t.Setenv("MAX_UPLOAD_MB", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "abc")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "10")
	t.Setenv("SERVER_PORT", "http")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_VocabularyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	content := `
statuses:
  Delivered: Delivered
  RTO: RTO
fields:
  sku: [["style", "code"]]
style_rules:
  - "of, -2-s => 2 TAPE COMBO"
header_offsets:
  returns: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("VOCABULARY_FILE", path)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_SECRET", "a-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	v := cfg.Vocabulary
	assert.Len(t, v.Statuses, 2)
	assert.Equal(t, domain.StatusRTO, v.Statuses["rto"])
	assert.Equal(t, [][]string{{"style", "code"}}, v.Fields[domain.FieldSKU])
	assert.NotEmpty(t, v.Fields[domain.FieldStatus])
	assert.Equal(t, []string{"of, -2-s => 2 TAPE COMBO"}, v.StyleRules)
	assert.Equal(t, 8, v.HeaderOffset("Returns"))
	assert.Equal(t, 8, v.HeaderOffset("payments"))
}

func TestParseVocabulary_Errors(t *testing.T) {
	_, err := ParseVocabulary([]byte("statuses: [unclosed"))
	assert.Error(t, err)

	_, err = ParseVocabulary([]byte("header_offsets:\n  orders: -1\n"))
	assert.Error(t, err)
}
