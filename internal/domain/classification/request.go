package classification

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/po-classifier/internal/domain"
)

// SupplierNotProvided valor enviado al modelo cuando no hay proveedor.
const SupplierNotProvided = "Not provided"

// Request petición de clasificación ya resuelta (defaults aplicados).
// Se construye por petición y se descarta tras mostrar el resultado.
type Request struct {
	Description string
	Supplier    string
	Model       string
	Temperature float64
}

// NewRequest normaliza descripción y proveedor. No valida; ver Validate.
func NewRequest(description, supplier, model string, temperature float64) Request {
	return Request{
		Description: strings.TrimSpace(description),
		Supplier:    NormalizeSupplier(supplier),
		Model:       strings.TrimSpace(model),
		Temperature: temperature,
	}
}

// Validate rechaza descripciones vacías y temperaturas fuera de [0, 1].
// La temperatura no se recorta: un valor fuera de rango es error de entrada.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%w: po_description must be a non-empty string", domain.ErrInvalidInput)
	}
	if math.IsNaN(r.Temperature) || r.Temperature < 0 || r.Temperature > 1 {
		return fmt.Errorf("%w: temperature must be between 0 and 1, got %v", domain.ErrInvalidInput, r.Temperature)
	}
	if r.Model == "" {
		return fmt.Errorf("%w: model is required", domain.ErrInvalidInput)
	}
	return nil
}

// Key clave de memoización de la tupla completa.
// Cada campo va con su longitud como prefijo para que ningún separador sea ambiguo.
func (r Request) Key() string {
	temp := strconv.FormatFloat(r.Temperature, 'g', -1, 64)
	var b strings.Builder
	for _, part := range []string{r.Description, r.Supplier, r.Model, temp} {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// NormalizeSupplier recorta el proveedor y usa "Not provided" si queda vacío.
func NormalizeSupplier(supplier string) string {
	if s := strings.TrimSpace(supplier); s != "" {
		return s
	}
	return SupplierNotProvided
}
