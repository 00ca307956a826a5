package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

// StockCardUseCase casos de uso del registro de tarjetas de stock.
// La unicidad (dueño, código de barras) la garantiza el índice único del repositorio;
// no hay verificación previa.
type StockCardUseCase struct {
	repo repository.StockCardRepository
	now  func() time.Time
}

// NewStockCardUseCase construye el caso de uso.
func NewStockCardUseCase(repo repository.StockCardRepository) *StockCardUseCase {
	return &StockCardUseCase{repo: repo, now: time.Now}
}

// Create valida y persiste una tarjeta nueva del dueño.
// Errores: *domain.ValidationError, domain.ErrDuplicateBarcode.
func (uc *StockCardUseCase) Create(ctx context.Context, userID string, in dto.StockCardRequest) (*dto.StockCardResponse, error) {
	in = normalizeStockCard(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now().UTC().Truncate(time.Microsecond)
	card := &entity.StockCard{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProductName: in.ProductName,
		Barcode:     in.Barcode,
		Unit:        in.Unit,
		Status:      *in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	return toStockCardResponse(card), nil
}

// GetByID obtiene una tarjeta del dueño. domain.ErrNotFound si no existe o es de otro usuario.
func (uc *StockCardUseCase) GetByID(ctx context.Context, userID, id string) (*dto.StockCardResponse, error) {
	id, err := dto.ParseID(id)
	if err != nil {
		return nil, err
	}
	card, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	return toStockCardResponse(card), nil
}

// Update reemplaza todos los campos de la tarjeta en una sola escritura.
// Mantener el propio código de barras es válido; usar el de otra tarjeta del dueño no.
func (uc *StockCardUseCase) Update(ctx context.Context, userID, id string, in dto.StockCardRequest) (*dto.StockCardResponse, error) {
	in = normalizeStockCard(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	id, err := dto.ParseID(id)
	if err != nil {
		return nil, err
	}
	card := &entity.StockCard{
		ID:          id,
		UserID:      userID,
		ProductName: in.ProductName,
		Barcode:     in.Barcode,
		Unit:        in.Unit,
		Status:      *in.Status,
		UpdatedAt:   uc.now().UTC().Truncate(time.Microsecond),
	}
	if err := uc.repo.Update(ctx, card); err != nil {
		return nil, err
	}
	return toStockCardResponse(card), nil
}

// Delete elimina la tarjeta; sus movimientos se borran en cascada en la base de datos.
func (uc *StockCardUseCase) Delete(ctx context.Context, userID, id string) error {
	id, err := dto.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, userID, id)
}

// List lista las tarjetas del dueño aplicando los filtros opcionales.
func (uc *StockCardUseCase) List(ctx context.Context, userID string, f dto.StockCardFilterRequest) (*dto.StockCardListResponse, error) {
	list, err := uc.repo.List(ctx, userID, repository.StockCardFilter{
		Name:    strings.TrimSpace(f.Name),
		Barcode: strings.TrimSpace(f.Barcode),
		Unit:    strings.TrimSpace(f.Unit),
		Status:  f.Status,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockCardResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toStockCardResponse(c))
	}
	return &dto.StockCardListResponse{Items: items}, nil
}

func normalizeStockCard(in dto.StockCardRequest) dto.StockCardRequest {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.Barcode = strings.TrimSpace(in.Barcode)
	in.Unit = strings.ToLower(strings.TrimSpace(in.Unit))
	return in
}

func toStockCardResponse(c *entity.StockCard) *dto.StockCardResponse {
	if c == nil {
		return nil
	}
	return &dto.StockCardResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		ProductName: c.ProductName,
		Barcode:     c.Barcode,
		Unit:        c.Unit,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
