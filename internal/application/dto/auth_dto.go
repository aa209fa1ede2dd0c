package dto

import "time"

// LoginRequest PIN del administrador.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// LoginResponse token Bearer para las rutas de escritura.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
