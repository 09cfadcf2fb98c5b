package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jhoicas/po-classifier/internal/application/dto"
	"github.com/jhoicas/po-classifier/internal/application/ports"
)

// Verificar en tiempo de compilación que GroqService implementa LLMService.
var _ ports.LLMService = (*GroqService)(nil)

const (
	// GroqBaseURL endpoint OpenAI-compatible de Groq.
	GroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel modelo usado si la configuración no indica otro.
	DefaultModel = "openai/gpt-oss-120b"
)

var errMissingAPIKey = errors.New("AI: API key vacía")

// GroqConfig configuración del adaptador.
type GroqConfig struct {
	APIKey  string
	BaseURL string        // vacío = GroqBaseURL
	Timeout time.Duration // 0 = sin timeout propio; el transporte decide
}

// GroqService adaptador que implementa LLMService sobre la API de Chat Completions
// de Groq usando el cliente OpenAI-compatible go-openai.
type GroqService struct {
	apiKey string
	client *openai.Client
}

// NewGroqService construye el adaptador.
// Si APIKey está vacío las llamadas devuelven error sin tocar la red.
func NewGroqService(cfg GroqConfig) *GroqService {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = GroqBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &GroqService{
		apiKey: cfg.APIKey,
		client: openai.NewClientWithConfig(oc),
	}
}

// Complete envía los mensajes a Groq y devuelve el contenido de la primera opción.
func (s *GroqService) Complete(ctx context.Context, req dto.ChatRequest) (string, error) {
	// ClassificationUseCase ya rechaza la clave vacía como fallo de transporte;
	// este guard cubre a otros llamadores del adaptador.
	if s.apiKey == "" {
		return "", errMissingAPIKey
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: wireTemperature(req.Temperature),
		Messages:    messages,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("AI: Groq error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI: Groq devolvió respuesta vacía")
	}
	return resp.Choices[0].Message.Content, nil
}

// wireTemperature convierte la temperatura al tipo del cliente.
// go-openai omite temperature == 0 del JSON (omitempty) y el proveedor usaría
// su default; se envía el menor float32 positivo, equivalente a 0.
func wireTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
