package dto

import "time"

// ContactRequest entrada para crear o actualizar un contacto.
type ContactRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	LineID string `json:"line_id"`
	Note   string `json:"note"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	LineID    string    `json:"line_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
