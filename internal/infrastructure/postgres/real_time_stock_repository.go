package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

var _ repository.RealTimeStockRepository = (*RealTimeStockRepo)(nil)

// RealTimeStockRepo lectura de la vista vw_rt_stock.
type RealTimeStockRepo struct {
	q Querier
}

// NewRealTimeStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRealTimeStockRepository(q Querier) *RealTimeStockRepo {
	return &RealTimeStockRepo{q: q}
}

// ListActive devuelve una fila por tarjeta activa del dueño, incluidas las que no tienen movimientos.
func (r *RealTimeStockRepo) ListActive(ctx context.Context, userID string) ([]*entity.RealTimeStock, error) {
	query := `
		SELECT user_id, stock_card_id, product_name, barcode, unit, status,
		       quantity_in, quantity_out, current_quantity
		FROM vw_rt_stock
		WHERE user_id = $1 AND status = TRUE
		ORDER BY product_name, barcode`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list real time stock: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RealTimeStock, 0)
	for rows.Next() {
		var s entity.RealTimeStock
		if err := rows.Scan(
			&s.UserID, &s.StockCardID, &s.ProductName, &s.Barcode, &s.Unit, &s.Status,
			&s.QuantityIn, &s.QuantityOut, &s.CurrentQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan real time stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
