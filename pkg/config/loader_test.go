package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DefaultsAndBuiltinTemplates(t *testing.T) {
	cfg, err := Initialize(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.NotNil(t, cfg.Templates)

	tpl, err := cfg.Templates.Get("anker")
	require.NoError(t, err)
	assert.Equal(t, "Anker", tpl.Name)
}

func TestInitialize_UserTemplatesOverrideBuiltin(t *testing.T) {
	dir := t.TempDir()
	yamlContent := `
templates:
  anker:
    id: anker
    name: "Anker (custom)"
    base_url: "https://anker.example.com"
    product_path_prefix: "/p/"
  acme:
    id: acme
    name: "Acme Cables"
    base_url: "https://acme.example.com"
    product_path_prefix: "/products/"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates.yaml"), []byte(yamlContent), 0o644))

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	anker, err := cfg.Templates.Get("anker")
	require.NoError(t, err)
	assert.Equal(t, "Anker (custom)", anker.Name)

	acme, err := cfg.Templates.Get("acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Cables", acme.Name)

	_, err = cfg.Templates.Get("belkin")
	require.NoError(t, err) // builtin survives when not overridden
}

func TestInitialize_MissingTemplatesFileIsNotFatal(t *testing.T) {
	cfg, err := Initialize(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Templates.List())
}

func TestParseBoolEnv(t *testing.T) {
	cases := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"false", false, false},
		{"0", false, false},
		{"no", false, false},
		{"maybe", false, true},
	}
	for _, tc := range cases {
		t.Setenv("TEST_BOOL_FLAG", tc.raw)
		got, err := parseBoolEnv("TEST_BOOL_FLAG", false)
		if tc.wantErr {
			assert.Error(t, err, "raw %q", tc.raw)
			continue
		}
		require.NoError(t, err, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}
}

func TestRequireAIGatewayKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.RequireAIGatewayKey()
	assert.Error(t, err)

	cfg.AIGatewayAPIKey = "secret"
	key, err := cfg.RequireAIGatewayKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}

func TestRequireFirecrawlKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.RequireFirecrawlKey()
	assert.Error(t, err)

	cfg.FirecrawlAPIKey = "secret"
	key, err := cfg.RequireFirecrawlKey()
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}
