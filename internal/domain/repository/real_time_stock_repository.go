package repository

import (
	"context"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
)

// RealTimeStockRepository lectura de la vista vw_rt_stock (solo tarjetas activas del dueño).
type RealTimeStockRepository interface {
	ListActive(ctx context.Context, userID string) ([]*entity.RealTimeStock, error)
}
