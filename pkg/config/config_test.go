package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/po-classifier/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "po-classifier", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "openai/gpt-oss-120b", cfg.AI.DefaultModel)
	assert.Equal(t, 0.0, cfg.AI.DefaultTemperature)
	assert.Equal(t, config.DefaultSystemPrompt, cfg.AI.SystemPrompt)
	assert.Zero(t, cfg.AI.Timeout)
}

func TestLoad_DesdeEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_env")
	t.Setenv("GROQ_MODEL", "llama-3.3-70b-versatile")
	t.Setenv("GROQ_TEMPERATURE", "0.25")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AI_TIMEOUT_SECONDS", "30")
	t.Setenv("SYSTEM_PROMPT", "custom prompt")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk_env", cfg.AI.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.AI.DefaultModel)
	assert.Equal(t, 0.25, cfg.AI.DefaultTemperature)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "custom prompt", cfg.AI.SystemPrompt)
}

func TestLoad_SystemPromptDesdeArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("taxonomy from file"), 0o600))
	t.Setenv("SYSTEM_PROMPT_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "taxonomy from file", cfg.AI.SystemPrompt)
}

func TestLoad_SystemPromptArchivoInexistente(t *testing.T) {
	t.Setenv("SYSTEM_PROMPT_FILE", filepath.Join(t.TempDir(), "no-existe.txt"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_TemperaturaInvalida(t *testing.T) {
	for _, raw := range []string{"abc", "1.5", "-0.1", "NaN"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("GROQ_TEMPERATURE", raw)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnterosInvalidos(t *testing.T) {
	cases := map[string]string{
		"HTTP_PORT":          "abc",
		"AI_TIMEOUT_SECONDS": "diez",
	}
	for key, raw := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, raw)
			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_TimeoutNegativo(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "-5")

	_, err := config.Load()
	assert.Error(t, err)
}
