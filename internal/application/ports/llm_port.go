package ports

import (
	"context"

	"github.com/jhoicas/po-classifier/internal/application/dto"
)

// LLMService define el puerto de salida hacia el proveedor de chat-completion.
// Cualquier adaptador (Groq, OpenAI, mock) debe implementar esta interfaz.
// La aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// Complete envía los mensajes al modelo con la temperatura indicada y
	// devuelve el texto de la primera opción tal cual, sin interpretarlo.
	Complete(ctx context.Context, req dto.ChatRequest) (string, error)
}
