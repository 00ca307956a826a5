package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

var _ repository.RealTimeStockRepository = (*RealTimeStockRepo)(nil)

// RealTimeStockRepo lectura de la vista vw_rt_stock.
type RealTimeStockRepo struct {
	q DBTX
}

// NewRealTimeStockRepository construye el adaptador.
func NewRealTimeStockRepository(q DBTX) *RealTimeStockRepo {
	return &RealTimeStockRepo{q: q}
}

// ListActive devuelve una fila por tarjeta activa del dueño, incluidas las que no tienen movimientos.
func (r *RealTimeStockRepo) ListActive(ctx context.Context, userID string) ([]*entity.RealTimeStock, error) {
	query := `
		SELECT user_id, stock_card_id, product_name, barcode, unit, status,
		       quantity_in, quantity_out, current_quantity
		FROM vw_rt_stock
		WHERE user_id = ? AND status = 1
		ORDER BY product_name, barcode`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list real time stock: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.RealTimeStock, 0)
	for rows.Next() {
		var s entity.RealTimeStock
		var in, out, current decimal.Decimal
		if err := rows.Scan(
			&s.UserID, &s.StockCardID, &s.ProductName, &s.Barcode, &s.Unit, &s.Status,
			&in, &out, &current,
		); err != nil {
			return nil, fmt.Errorf("scan real time stock: %w", err)
		}
		s.QuantityIn = inventory.Normalize(in)
		s.QuantityOut = inventory.Normalize(out)
		s.CurrentQuantity = inventory.Normalize(current)
		list = append(list, &s)
	}
	return list, rows.Err()
}
