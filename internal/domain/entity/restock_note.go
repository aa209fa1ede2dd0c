package entity

import "time"

// RestockNote nota de pedido a proveedores. Es dueña de sus ítems: borrarla los borra.
type RestockNote struct {
	ID        string
	Name      string
	Date      time.Time
	Items     []RestockItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestockItem ítem de la lista de chequeo de una nota.
type RestockItem struct {
	ID          string
	NoteID      string
	ItemName    string
	IsCompleted bool
	CreatedAt   time.Time
}
