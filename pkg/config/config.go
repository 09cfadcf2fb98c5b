package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	AI   AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig configuración del proveedor de chat-completion (Groq).
type AIConfig struct {
	APIKey             string
	BaseURL            string
	DefaultModel       string
	DefaultTemperature float64 // debe estar en [0, 1]
	SystemPrompt       string
	Timeout            time.Duration // 0 = default del transporte
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, GROQ_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	temperature, err := getFloat(v, "GROQ_TEMPERATURE", 0.0)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(temperature) || temperature < 0 || temperature > 1 {
		return nil, fmt.Errorf("config: GROQ_TEMPERATURE debe estar entre 0 y 1, recibido %v", temperature)
	}

	port, err := getInt(v, "HTTP_PORT", 8080)
	if err != nil {
		return nil, err
	}
	timeoutSeconds, err := getInt(v, "AI_TIMEOUT_SECONDS", 0)
	if err != nil {
		return nil, err
	}
	if timeoutSeconds < 0 {
		return nil, fmt.Errorf("config: AI_TIMEOUT_SECONDS no puede ser negativo, recibido %d", timeoutSeconds)
	}

	systemPrompt, err := loadSystemPrompt(v)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "po-classifier"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: port,
		},
		AI: AIConfig{
			APIKey:             getString(v, "GROQ_API_KEY", ""),
			BaseURL:            getString(v, "GROQ_BASE_URL", ""),
			DefaultModel:       getString(v, "GROQ_MODEL", "openai/gpt-oss-120b"),
			DefaultTemperature: temperature,
			SystemPrompt:       systemPrompt,
			Timeout:            time.Duration(timeoutSeconds) * time.Second,
		},
	}

	return cfg, nil
}

// loadSystemPrompt prioriza SYSTEM_PROMPT, luego el archivo SYSTEM_PROMPT_FILE y por último el prompt incluido.
func loadSystemPrompt(v *viper.Viper) (string, error) {
	if p := getString(v, "SYSTEM_PROMPT", ""); strings.TrimSpace(p) != "" {
		return p, nil
	}
	if path := getString(v, "SYSTEM_PROMPT_FILE", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("config: leer SYSTEM_PROMPT_FILE: %w", err)
		}
		return string(b), nil
	}
	return DefaultSystemPrompt, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) (int, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	if n, ok := v.Get(key).(int); ok {
		return n, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s inválido %q: %w", key, raw, err)
	}
	return n, nil
}

func getFloat(v *viper.Viper, key string, def float64) (float64, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s inválido %q: %w", key, raw, err)
	}
	return f, nil
}
