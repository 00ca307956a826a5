package dto

import (
	"github.com/google/uuid"

	"github.com/jhoicas/stockcard-api/internal/domain"
)

// ParseID normaliza un identificador de ruta a la forma canónica (minúsculas con guiones).
// Acepta también urn:uuid: y llaves; cualquier otro valor es domain.ErrNotFound.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.ErrNotFound
	}
	return id.String(), nil
}
