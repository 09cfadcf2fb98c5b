package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/po-classifier/internal/application/dto"
	"github.com/jhoicas/po-classifier/internal/application/ports"
	"github.com/jhoicas/po-classifier/internal/domain"
	"github.com/jhoicas/po-classifier/internal/domain/classification"
)

// ClassifierConfig configuración explícita del cliente de clasificación.
// APIKey la usa también el adaptador del proveedor; aquí solo se comprueba
// que exista para fallar sin tocar la red.
type ClassifierConfig struct {
	APIKey             string
	DefaultModel       string
	DefaultTemperature float64
	SystemPrompt       string
}

// ClassificationUseCase clasifica descripciones de órdenes de compra en L1/L2/L3.
// No guarda estado entre llamadas: cada invocación es independiente.
type ClassificationUseCase struct {
	llm ports.LLMService
	cfg ClassifierConfig
}

// NewClassificationUseCase construye el caso de uso inyectando el puerto LLMService.
func NewClassificationUseCase(llm ports.LLMService, cfg ClassifierConfig) *ClassificationUseCase {
	return &ClassificationUseCase{llm: llm, cfg: cfg}
}

// Resolve aplica los defaults configurados y normaliza la entrada.
// No valida: ver classification.Request.Validate.
func (uc *ClassificationUseCase) Resolve(in dto.ClassifyRequest) classification.Request {
	model := uc.cfg.DefaultModel
	if in.Model != nil && strings.TrimSpace(*in.Model) != "" {
		model = *in.Model
	}
	temperature := uc.cfg.DefaultTemperature
	if in.Temperature != nil {
		temperature = *in.Temperature
	}
	return classification.NewRequest(in.Description, in.Supplier, model, temperature)
}

// Classify valida la entrada y hace exactamente una llamada al proveedor.
// Devuelve el texto de la primera opción sin validar que sea JSON.
// Errores: domain.ErrInvalidInput (antes de cualquier llamada) o domain.ErrTransportFailure.
func (uc *ClassificationUseCase) Classify(ctx context.Context, in dto.ClassifyRequest) (string, error) {
	return uc.ClassifyRequest(ctx, uc.Resolve(in))
}

// ClassifyRequest igual que Classify pero sobre una petición ya resuelta.
func (uc *ClassificationUseCase) ClassifyRequest(ctx context.Context, req classification.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if uc.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY no configurado", domain.ErrTransportFailure)
	}

	chat := dto.ChatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages: []dto.ChatMessage{
			{Role: dto.RoleSystem, Content: uc.cfg.SystemPrompt},
			{Role: dto.RoleUser, Content: classification.BuildUserPrompt(req.Description, req.Supplier)},
		},
	}

	// Un solo intento, sin reintentos.
	content, err := uc.llm.Complete(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrTransportFailure, err.Error())
	}
	return content, nil
}
