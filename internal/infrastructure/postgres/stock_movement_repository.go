package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.user_id, m.stock_card_id, m.movement_type, m.movement_amount, m.movement_price,
	       m.total_price, m.movement_date, m.company, m.created_at, m.updated_at,
	       c.product_name, c.barcode, c.unit
	FROM stock_movement m
	JOIN stock_card c ON c.id = m.stock_card_id AND c.user_id = m.user_id`

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Si la tarjeta desapareció entre la verificación y el INSERT, ErrNotFound.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movement (id, user_id, stock_card_id, movement_type, movement_amount, movement_price,
			total_price, movement_date, company, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.StockCardID, m.Type, m.Amount, m.Price,
		m.TotalPrice, m.Date, m.Company, m.CreatedAt, m.UpdatedAt,
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
	query := movementSelect + ` WHERE m.id = $1 AND m.user_id = $2`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		SET stock_card_id = $3, movement_type = $4, movement_amount = $5, movement_price = $6,
		    total_price = $7, movement_date = $8, company = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.StockCardID, m.Type, m.Amount, m.Price,
		m.TotalPrice, m.Date, m.Company, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento del dueño.
func (r *StockMovementRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movement WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos de tarjetas activas del dueño, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, userID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := movementSelect + ` WHERE m.user_id = $1 AND c.status = TRUE`
	args := []any{userID}
	pos := 2
	if f.ProductName != "" {
		query += fmt.Sprintf(` AND c.product_name ILIKE $%d`, pos)
		args = append(args, likePattern(f.ProductName))
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(` AND m.movement_type = $%d`, pos)
		args = append(args, f.Type)
		pos++
	}
	if f.Unit != "" {
		query += fmt.Sprintf(` AND c.unit = $%d`, pos)
		args = append(args, f.Unit)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(` AND m.movement_date >= $%d`, pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(` AND m.movement_date <= $%d`, pos)
		args = append(args, *f.To)
	}
	query += ` ORDER BY m.movement_date DESC, m.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
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

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var card entity.StockCardInfo
	if err := row.Scan(
		&m.ID, &m.UserID, &m.StockCardID, &m.Type, &m.Amount, &m.Price,
		&m.TotalPrice, &m.Date, &m.Company, &m.CreatedAt, &m.UpdatedAt,
		&card.ProductName, &card.Barcode, &card.Unit,
	); err != nil {
		return nil, err
	}
	m.Card = &card
	return &m, nil
}
