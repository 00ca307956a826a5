package inventory

import (
	"context"

	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la verificación de la tarjeta y la escritura del movimiento sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cardRepo repository.StockCardRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
