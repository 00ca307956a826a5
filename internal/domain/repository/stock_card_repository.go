package repository

import (
	"context"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
)

// StockCardFilter filtros opcionales del listado de tarjetas. Campos vacíos / nil no filtran.
type StockCardFilter struct {
	Name    string // subcadena, sin distinguir mayúsculas
	Barcode string // subcadena
	Unit    string // subcadena
	Status  *bool  // exacto
}

// StockCardRepository define el puerto de persistencia para StockCard (DIP).
// Todas las operaciones van acotadas por el dueño (userID).
// Create y Update devuelven domain.ErrDuplicateBarcode si (userID, barcode) ya existe.
// GetByID devuelve nil, nil si no existe; Update y Delete devuelven domain.ErrNotFound.
// Update completa card.CreatedAt con el valor almacenado.
type StockCardRepository interface {
	Create(ctx context.Context, card *entity.StockCard) error
	GetByID(ctx context.Context, userID, id string) (*entity.StockCard, error)
	// GetForShare como GetByID pero bloquea la fila contra borrados hasta el fin de la transacción.
	GetForShare(ctx context.Context, userID, id string) (*entity.StockCard, error)
	Update(ctx context.Context, card *entity.StockCard) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, f StockCardFilter) ([]*entity.StockCard, error)
}
