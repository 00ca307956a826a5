package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.user_id, m.stock_card_id, m.movement_type, m.movement_amount, m.movement_price,
	       m.total_price, m.movement_date, m.company, m.created_at, m.updated_at,
	       c.product_name, c.barcode, c.unit
	FROM stock_movement m
	JOIN stock_card c ON c.id = m.stock_card_id AND c.user_id = m.user_id`

// StockMovementRepo implementación sobre SQLite (usable con db o tx).
type StockMovementRepo struct {
	q DBTX
}

// NewStockMovementRepository construye el adaptador.
func NewStockMovementRepository(q DBTX) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movement (id, user_id, stock_card_id, movement_type, movement_amount, movement_price,
			total_price, movement_date, company, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		m.ID, m.UserID, m.StockCardID, m.Type, m.Amount.StringFixed(2), m.Price.StringFixed(2),
		m.TotalPrice.StringFixed(2), formatTime(m.Date), m.Company,
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento del dueño con su tarjeta. nil, nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, userID, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRowContext(ctx, movementSelect+` WHERE m.id = ? AND m.user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// Update reemplaza todos los campos del movimiento, incluida la tarjeta.
func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	query := `
		UPDATE stock_movement
		SET stock_card_id = ?, movement_type = ?, movement_amount = ?, movement_price = ?,
		    total_price = ?, movement_date = ?, company = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.q.ExecContext(ctx, query,
		m.StockCardID, m.Type, m.Amount.StringFixed(2), m.Price.StringFixed(2),
		m.TotalPrice.StringFixed(2), formatTime(m.Date), m.Company, formatTime(m.UpdatedAt),
		m.ID, m.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update stock movement: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un movimiento del dueño.
func (r *StockMovementRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM stock_movement WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return requireAffected(res)
}

// List lista movimientos de tarjetas activas del dueño, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, userID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := movementSelect + ` WHERE m.user_id = ? AND c.status = 1`
	args := []any{userID}
	if f.ProductName != "" {
		query += likeClause("c.product_name")
		args = append(args, likePattern(f.ProductName))
	}
	if f.Type != "" {
		query += ` AND m.movement_type = ?`
		args = append(args, f.Type)
	}
	if f.Unit != "" {
		query += ` AND c.unit = ?`
		args = append(args, f.Unit)
	}
	if f.From != nil {
		query += ` AND m.movement_date >= ?`
		args = append(args, formatTime(*f.From))
	}
	if f.To != nil {
		query += ` AND m.movement_date <= ?`
		args = append(args, formatTime(*f.To))
	}
	query += ` ORDER BY m.movement_date DESC, m.created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row rowScanner) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var card entity.StockCardInfo
	var amount, price, total decimal.Decimal
	var company sql.NullString
	var date, createdAt, updatedAt string
	if err := row.Scan(
		&m.ID, &m.UserID, &m.StockCardID, &m.Type, &amount, &price,
		&total, &date, &company, &createdAt, &updatedAt,
		&card.ProductName, &card.Barcode, &card.Unit,
	); err != nil {
		return nil, err
	}
	m.Amount = inventory.Normalize(amount)
	m.Price = inventory.Normalize(price)
	m.TotalPrice = inventory.Normalize(total)
	if company.Valid {
		c := company.String
		m.Company = &c
	}
	var err error
	if m.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	m.Card = &card
	return &m, nil
}
