package dto

// ErrorResponse cuerpo de error HTTP. Rule sólo aparece en errores de validación.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
	Details any    `json:"details,omitempty"`
}

// DeleteResponse confirmación de borrado.
type DeleteResponse struct {
	Success bool `json:"success"`
}
