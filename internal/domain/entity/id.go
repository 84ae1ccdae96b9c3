package entity

import "github.com/google/uuid"

// NewID genera un UUIDv7: ordenado por tiempo, así las líneas de una operación se listan en orden de carga.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
