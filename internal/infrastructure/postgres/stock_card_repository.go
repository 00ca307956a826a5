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

var _ repository.StockCardRepository = (*StockCardRepo)(nil)

const stockCardColumns = `id, user_id, product_name, barcode, unit, status, created_at, updated_at`

// StockCardRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockCardRepo struct {
	q Querier
}

// NewStockCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCardRepository(q Querier) *StockCardRepo {
	return &StockCardRepo{q: q}
}

// Create persiste una tarjeta. El índice ux_stock_card_user_barcode rechaza duplicados.
func (r *StockCardRepo) Create(ctx context.Context, card *entity.StockCard) error {
	query := `
		INSERT INTO stock_card (` + stockCardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		card.ID, card.UserID, card.ProductName, card.Barcode, card.Unit, card.Status,
		card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("insert stock card: %w", err)
	}
	return nil
}

// GetByID obtiene una tarjeta del dueño. nil, nil si no existe.
func (r *StockCardRepo) GetByID(ctx context.Context, userID, id string) (*entity.StockCard, error) {
	query := `SELECT ` + stockCardColumns + ` FROM stock_card WHERE id = $1 AND user_id = $2`
	return r.getOne(ctx, query, id, userID)
}

// GetForShare igual que GetByID con FOR SHARE: un DELETE concurrente espera al commit.
func (r *StockCardRepo) GetForShare(ctx context.Context, userID, id string) (*entity.StockCard, error) {
	query := `SELECT ` + stockCardColumns + ` FROM stock_card WHERE id = $1 AND user_id = $2 FOR SHARE`
	return r.getOne(ctx, query, id, userID)
}

func (r *StockCardRepo) getOne(ctx context.Context, query string, args ...any) (*entity.StockCard, error) {
	c, err := scanStockCard(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock card: %w", err)
	}
	return c, nil
}

// Update reemplaza todos los campos en un único UPDATE acotado por dueño y completa card.CreatedAt.
func (r *StockCardRepo) Update(ctx context.Context, card *entity.StockCard) error {
	query := `
		UPDATE stock_card
		SET product_name = $3, barcode = $4, unit = $5, status = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		card.ID, card.UserID, card.ProductName, card.Barcode, card.Unit, card.Status, card.UpdatedAt,
	).Scan(&card.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case err != nil:
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("update stock card: %w", err)
	}
	return nil
}

// Delete elimina la tarjeta; ON DELETE CASCADE borra sus movimientos en la misma sentencia.
func (r *StockCardRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_card WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete stock card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las tarjetas del dueño con filtros opcionales, ordenadas por nombre.
func (r *StockCardRepo) List(ctx context.Context, userID string, f repository.StockCardFilter) ([]*entity.StockCard, error) {
	query := `SELECT ` + stockCardColumns + ` FROM stock_card WHERE user_id = $1`
	args := []any{userID}
	pos := 2
	if f.Name != "" {
		query += fmt.Sprintf(` AND product_name ILIKE $%d`, pos)
		args = append(args, likePattern(f.Name))
		pos++
	}
	if f.Barcode != "" {
		query += fmt.Sprintf(` AND barcode ILIKE $%d`, pos)
		args = append(args, likePattern(f.Barcode))
		pos++
	}
	if f.Unit != "" {
		query += fmt.Sprintf(` AND unit ILIKE $%d`, pos)
		args = append(args, likePattern(f.Unit))
		pos++
	}
	if f.Status != nil {
		query += fmt.Sprintf(` AND status = $%d`, pos)
		args = append(args, *f.Status)
	}
	query += ` ORDER BY product_name, barcode`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock cards: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockCard, 0)
	for rows.Next() {
		c, err := scanStockCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock card: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanStockCard(row pgx.Row) (*entity.StockCard, error) {
	var c entity.StockCard
	if err := row.Scan(
		&c.ID, &c.UserID, &c.ProductName, &c.Barcode, &c.Unit, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
