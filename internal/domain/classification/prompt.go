package classification

import "fmt"

const userPromptTemplate = `
PO Description:
%s

Supplier:
%s
`

// BuildUserPrompt arma el mensaje de usuario con la descripción y el proveedor.
// Función pura: la validación es responsabilidad del llamador.
func BuildUserPrompt(description, supplier string) string {
	return fmt.Sprintf(userPromptTemplate, description, supplier)
}
