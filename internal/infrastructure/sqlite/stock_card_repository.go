package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

var _ repository.StockCardRepository = (*StockCardRepo)(nil)

const stockCardColumns = `id, user_id, product_name, barcode, unit, status, created_at, updated_at`

// StockCardRepo implementación sobre SQLite (usable con db o tx).
type StockCardRepo struct {
	q DBTX
}

// NewStockCardRepository construye el adaptador.
func NewStockCardRepository(q DBTX) *StockCardRepo {
	return &StockCardRepo{q: q}
}

// Create persiste una tarjeta. El índice ux_stock_card_user_barcode rechaza duplicados.
func (r *StockCardRepo) Create(ctx context.Context, card *entity.StockCard) error {
	query := `INSERT INTO stock_card (` + stockCardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		card.ID, card.UserID, card.ProductName, card.Barcode, card.Unit, card.Status,
		formatTime(card.CreatedAt), formatTime(card.UpdatedAt),
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
	query := `SELECT ` + stockCardColumns + ` FROM stock_card WHERE id = ? AND user_id = ?`
	c, err := scanStockCard(r.q.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock card: %w", err)
	}
	return c, nil
}

// GetForShare en SQLite equivale a GetByID: la transacción ya serializa las escrituras.
func (r *StockCardRepo) GetForShare(ctx context.Context, userID, id string) (*entity.StockCard, error) {
	return r.GetByID(ctx, userID, id)
}

// Update reemplaza todos los campos en un único UPDATE acotado por dueño y completa card.CreatedAt.
func (r *StockCardRepo) Update(ctx context.Context, card *entity.StockCard) error {
	query := `
		UPDATE stock_card
		SET product_name = ?, barcode = ?, unit = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING created_at`
	var createdAt string
	err := r.q.QueryRowContext(ctx, query,
		card.ProductName, card.Barcode, card.Unit, card.Status, formatTime(card.UpdatedAt),
		card.ID, card.UserID,
	).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case err != nil:
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("update stock card: %w", err)
	}
	if card.CreatedAt, err = parseTime(createdAt); err != nil {
		return fmt.Errorf("update stock card: %w", err)
	}
	return nil
}

// Delete elimina la tarjeta; ON DELETE CASCADE borra sus movimientos.
func (r *StockCardRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM stock_card WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete stock card: %w", err)
	}
	return requireAffected(res)
}

// List lista las tarjetas del dueño con filtros opcionales, ordenadas por nombre.
func (r *StockCardRepo) List(ctx context.Context, userID string, f repository.StockCardFilter) ([]*entity.StockCard, error) {
	query := `SELECT ` + stockCardColumns + ` FROM stock_card WHERE user_id = ?`
	args := []any{userID}
	if f.Name != "" {
		query += likeClause("product_name")
		args = append(args, likePattern(f.Name))
	}
	if f.Barcode != "" {
		query += likeClause("barcode")
		args = append(args, likePattern(f.Barcode))
	}
	if f.Unit != "" {
		query += likeClause("unit")
		args = append(args, likePattern(f.Unit))
	}
	if f.Status != nil {
		query += ` AND status = ?`
		args = append(args, *f.Status)
	}
	query += ` ORDER BY product_name, barcode`

	rows, err := r.q.QueryContext(ctx, query, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockCard(row rowScanner) (*entity.StockCard, error) {
	var c entity.StockCard
	var createdAt, updatedAt string
	if err := row.Scan(
		&c.ID, &c.UserID, &c.ProductName, &c.Barcode, &c.Unit, &c.Status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
