package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

// MovementUseCase libro de movimientos de stock (entradas y salidas por tarjeta).
// Las escrituras verifican dentro de una transacción que la tarjeta exista y sea del mismo dueño.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, now: time.Now}
}

// Create registra un movimiento contra una tarjeta del dueño.
// Errores: *domain.ValidationError, domain.ErrNotFound (tarjeta inexistente o ajena).
func (uc *MovementUseCase) Create(ctx context.Context, userID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	mov, err := buildMovement(userID, in)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC().Truncate(time.Microsecond)
	mov.ID = uuid.New().String()
	mov.CreatedAt = now
	mov.UpdatedAt = now

	err = uc.txRunner.Run(ctx, func(cardRepo repository.StockCardRepository, movRepo repository.StockMovementRepository) error {
		card, err := lockOwnedCard(ctx, cardRepo, userID, mov.StockCardID)
		if err != nil {
			return err
		}
		mov.Card = cardInfo(card)
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// Update reemplaza todos los campos de un movimiento existente del dueño.
func (uc *MovementUseCase) Update(ctx context.Context, userID, id string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	mov, err := buildMovement(userID, in)
	if err != nil {
		return nil, err
	}
	if id, err = dto.ParseID(id); err != nil {
		return nil, err
	}
	mov.ID = id
	mov.UpdatedAt = uc.now().UTC().Truncate(time.Microsecond)

	err = uc.txRunner.Run(ctx, func(cardRepo repository.StockCardRepository, movRepo repository.StockMovementRepository) error {
		existing, err := movRepo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		card, err := lockOwnedCard(ctx, cardRepo, userID, mov.StockCardID)
		if err != nil {
			return err
		}
		mov.CreatedAt = existing.CreatedAt
		mov.Card = cardInfo(card)
		return movRepo.Update(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// GetByID obtiene un movimiento del dueño con los datos de su tarjeta.
func (uc *MovementUseCase) GetByID(ctx context.Context, userID, id string) (*dto.StockMovementResponse, error) {
	id, err := dto.ParseID(id)
	if err != nil {
		return nil, err
	}
	mov, err := uc.movRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovementResponse(mov), nil
}

// Delete elimina un movimiento del dueño.
func (uc *MovementUseCase) Delete(ctx context.Context, userID, id string) error {
	id, err := dto.ParseID(id)
	if err != nil {
		return err
	}
	return uc.movRepo.Delete(ctx, userID, id)
}

// List lista movimientos de tarjetas activas del dueño con filtros opcionales.
func (uc *MovementUseCase) List(ctx context.Context, userID string, f dto.MovementFilterRequest) (*dto.StockMovementListResponse, error) {
	movType := strings.ToLower(strings.TrimSpace(f.Type))
	if movType != "" && !entity.IsValidMovementType(movType) {
		return nil, domain.NewValidationError("type", "debe ser uno de: in out")
	}
	unit := strings.ToLower(strings.TrimSpace(f.Unit))
	if unit != "" && !entity.IsValidUnit(unit) {
		return nil, domain.NewValidationError("unit", "debe ser uno de: "+strings.Join(entity.Units, " "))
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, domain.NewValidationError("to", "debe ser posterior a from")
	}
	list, err := uc.movRepo.List(ctx, userID, repository.MovementFilter{
		ProductName: strings.TrimSpace(f.ProductName),
		Type:        movType,
		Unit:        unit,
		From:        f.From,
		To:          f.To,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.StockMovementListResponse{Items: items}, nil
}

// buildMovement valida el request y arma la entidad con importes normalizados a 2 decimales.
// total_price se respeta tal cual lo envía el cliente; solo se calcula si falta.
func buildMovement(userID string, in dto.StockMovementRequest) (*entity.StockMovement, error) {
	in.StockCardID = strings.TrimSpace(in.StockCardID)
	in.MovementType = strings.ToLower(strings.TrimSpace(in.MovementType))

	fields := map[string]string{}
	if err := dto.Validate(in); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		for k, v := range ve.Fields {
			fields[k] = v
		}
	}
	if in.MovementAmount != nil && !inventory.InRange(*in.MovementAmount) {
		fields["movement_amount"] = "debe estar entre 0 y 999999.99"
	}
	if in.MovementPrice != nil && !inventory.InRange(*in.MovementPrice) {
		fields["movement_price"] = "debe estar entre 0 y 999999.99"
	}
	if in.TotalPrice != nil && !inventory.InRange(*in.TotalPrice) {
		fields["total_price"] = "debe estar entre 0 y 999999.99"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	amount := inventory.Normalize(*in.MovementAmount)
	price := inventory.Normalize(*in.MovementPrice)
	total := inventory.TotalPrice(amount, price)
	if in.TotalPrice != nil {
		total = inventory.Normalize(*in.TotalPrice)
	}
	if !inventory.InRange(total) {
		return nil, domain.NewValidationError("total_price", "debe estar entre 0 y 999999.99")
	}

	var company *string
	if in.Company != nil {
		if c := strings.TrimSpace(*in.Company); c != "" {
			company = &c
		}
	}
	return &entity.StockMovement{
		UserID:      userID,
		StockCardID: in.StockCardID,
		Type:        in.MovementType,
		Amount:      amount,
		Price:       price,
		TotalPrice:  total,
		Date:        in.MovementDate.Time.UTC(),
		Company:     company,
	}, nil
}

// lockOwnedCard exige que la tarjeta exista y sea del dueño; si no, domain.ErrNotFound.
func lockOwnedCard(ctx context.Context, cardRepo repository.StockCardRepository, userID, cardID string) (*entity.StockCard, error) {
	card, err := cardRepo.GetForShare(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	return card, nil
}

func cardInfo(c *entity.StockCard) *entity.StockCardInfo {
	return &entity.StockCardInfo{ProductName: c.ProductName, Barcode: c.Barcode, Unit: c.Unit}
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	out := &dto.StockMovementResponse{
		ID:             m.ID,
		UserID:         m.UserID,
		StockCardID:    m.StockCardID,
		MovementType:   m.Type,
		MovementAmount: m.Amount,
		MovementPrice:  m.Price,
		TotalPrice:     m.TotalPrice,
		MovementDate:   m.Date,
		Company:        m.Company,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Card != nil {
		out.Card = &dto.MovementCardResponse{
			ProductName: m.Card.ProductName,
			Barcode:     m.Card.Barcode,
			Unit:        m.Card.Unit,
		}
	}
	return out
}
