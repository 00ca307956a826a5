package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
)

// MovementFilter filtros opcionales del listado de movimientos. Campos vacíos / nil no filtran.
type MovementFilter struct {
	ProductName string // subcadena sobre el nombre de la tarjeta
	Type        string // in | out
	Unit        string // unidad exacta de la tarjeta
	From        *time.Time
	To          *time.Time
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Las lecturas traen Card cargada; List solo incluye tarjetas activas del mismo dueño.
// GetByID devuelve nil, nil si no existe; Update y Delete devuelven domain.ErrNotFound.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, userID, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, f MovementFilter) ([]*entity.StockMovement, error)
}
