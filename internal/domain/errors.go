package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Son los dos únicos tipos de error que expone la clasificación.
var (
	// ErrInvalidInput entrada rechazada antes de cualquier llamada de red.
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrTransportFailure la llamada al proveedor LLM falló (red, auth, rate limit o respuesta mal formada).
	ErrTransportFailure = errors.New("Classification request failed")
)
