package dto

import "time"

// RestockItemRequest ítem de la lista de chequeo.
type RestockItemRequest struct {
	ItemName    string `json:"item_name"`
	IsCompleted bool   `json:"is_completed"`
}

// RestockNoteRequest entrada para crear o reemplazar una nota. NoteDate en formato YYYY-MM-DD;
// vacío = hoy.
type RestockNoteRequest struct {
	NoteName string               `json:"note_name"`
	NoteDate string               `json:"note_date"`
	Items    []RestockItemRequest `json:"items"`
}

// ToggleItemRequest marca o desmarca un ítem.
type ToggleItemRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// RestockItemResponse salida de un ítem.
type RestockItemResponse struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"note_id"`
	ItemName    string    `json:"item_name"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestockNoteResponse salida de una nota con sus ítems.
type RestockNoteResponse struct {
	ID        string                `json:"id"`
	NoteName  string                `json:"note_name"`
	NoteDate  string                `json:"note_date"`
	Items     []RestockItemResponse `json:"items"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}
