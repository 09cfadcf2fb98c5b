package dto

import (
	"bytes"
	"encoding/json"
)

// Roles de mensaje aceptados por el proveedor.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage mensaje con rol para el proveedor de chat-completion.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest petición al puerto LLMService.
type ChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []ChatMessage `json:"messages"`
}

// ClassifyRequest entrada de clasificación (formulario o JSON).
// Model y Temperature son opcionales; nil usa los valores configurados.
type ClassifyRequest struct {
	Description string   `json:"po_description"`
	Supplier    string   `json:"supplier"`
	Model       *string  `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// ClassifyResponse resultado mostrado al usuario.
// Parsed solo se llena cuando Raw es JSON válido; Raw se devuelve siempre.
type ClassifyResponse struct {
	ID          string          `json:"id"`
	Raw         string          `json:"raw"`
	Parsed      json.RawMessage `json:"parsed,omitempty"`
	ValidJSON   bool            `json:"valid_json"`
	Cached      bool            `json:"cached"`
	Model       string          `json:"model"`
	Temperature float64         `json:"temperature"`
	LatencyMs   int64           `json:"latency_ms"`
}

// NewClassifyResponse construye la respuesta a partir del texto crudo del modelo.
// Un texto que no es JSON no es error: ValidJSON queda en false.
func NewClassifyResponse(id, raw string) ClassifyResponse {
	out := ClassifyResponse{ID: id, Raw: raw}
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && json.Valid(trimmed) {
		out.Parsed = json.RawMessage(trimmed)
		out.ValidJSON = true
	}
	return out
}

// PrettyJSON devuelve Parsed indentado, o "" si no es JSON válido.
func (r ClassifyResponse) PrettyJSON() string {
	if !r.ValidJSON {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Parsed, "", "  "); err != nil {
		return ""
	}
	return buf.String()
}
