package entity

import (
	"strings"
	"time"
)

// Contact entrada del directorio de proveedores/vendedores. Sólo Name es obligatorio.
type Contact struct {
	ID          string
	Name        string
	Phone       string
	MessagingID string // id de LINE u otra mensajería
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Matches búsqueda por subcadena sobre nombre, teléfono e id de mensajería.
func (c *Contact) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range []string{c.Name, c.Phone, c.MessagingID} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
