package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

const (
	owner  = "11111111-1111-1111-1111-111111111111"
	other  = "22222222-2222-2222-2222-222222222222"
	cardID = "33333333-3333-3333-3333-333333333333"
)

// stubCards solo atiende GetForShare; el resto no se usa en el libro de movimientos.
type stubCards struct {
	repository.StockCardRepository
	cards map[string]*entity.StockCard
}

func (s stubCards) GetForShare(_ context.Context, userID, id string) (*entity.StockCard, error) {
	c, ok := s.cards[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

type fakeMovements struct {
	items   map[string]entity.StockMovement
	filters []repository.MovementFilter
}

func (f *fakeMovements) Create(_ context.Context, m *entity.StockMovement) error {
	f.items[m.ID] = *m
	return nil
}

func (f *fakeMovements) GetByID(_ context.Context, userID, id string) (*entity.StockMovement, error) {
	m, ok := f.items[id]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeMovements) Update(_ context.Context, m *entity.StockMovement) error {
	if _, ok := f.items[m.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[m.ID] = *m
	return nil
}

func (f *fakeMovements) Delete(_ context.Context, userID, id string) error {
	m, ok := f.items[id]
	if !ok || m.UserID != userID {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeMovements) List(_ context.Context, userID string, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	f.filters = append(f.filters, filter)
	return []*entity.StockMovement{}, nil
}

// stubTx ejecuta fn sin transacción real; commits cuenta las ejecuciones sin error.
type stubTx struct {
	cards   stubCards
	movs    *fakeMovements
	commits int
}

func (s *stubTx) Run(_ context.Context, fn func(repository.StockCardRepository, repository.StockMovementRepository) error) error {
	if err := fn(s.cards, s.movs); err != nil {
		return err
	}
	s.commits++
	return nil
}

func newMovementUC() (*MovementUseCase, *stubTx) {
	movs := &fakeMovements{items: map[string]entity.StockMovement{}}
	tx := &stubTx{
		cards: stubCards{cards: map[string]*entity.StockCard{
			cardID: {ID: cardID, UserID: owner, ProductName: "Harina", Barcode: "H-1", Unit: "kg", Status: true},
		}},
		movs: movs,
	}
	uc := NewMovementUseCase(tx, movs)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return uc, tx
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestMovementUseCase_AlternateIDFormsReachTheSameMovement(t *testing.T) {
	uc, tx := newMovementUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, request("in", "5", "2"))
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, owner, "urn:uuid:"+created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := uc.Update(ctx, owner, "{"+created.ID+"}", request("out", "1", "2"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, tx.movs.items, 1)

	require.NoError(t, uc.Delete(ctx, owner, strings.ToUpper(created.ID)))
	assert.Empty(t, tx.movs.items)
}

func request(typ, amount, price string) dto.StockMovementRequest {
	return dto.StockMovementRequest{
		StockCardID:    cardID,
		MovementType:   typ,
		MovementAmount: dec(amount),
		MovementPrice:  dec(price),
		MovementDate:   &dto.Date{Time: time.Date(2024, 4, 30, 8, 0, 0, 0, time.UTC)},
	}
}

func TestMovementUseCase_CreateComputesTotal(t *testing.T) {
	uc, tx := newMovementUC()

	out, err := uc.Create(context.Background(), owner, request(" IN ", "2.5", "3.333"))
	require.NoError(t, err)
	assert.Equal(t, "in", out.MovementType)
	assert.True(t, out.MovementAmount.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, out.MovementPrice.Equal(decimal.RequireFromString("3.33")))
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("8.33")), out.TotalPrice.String())
	require.NotNil(t, out.Card)
	assert.Equal(t, "Harina", out.Card.ProductName)
	assert.Nil(t, out.Company)
	assert.Equal(t, 1, tx.commits)
}

func TestMovementUseCase_CreateKeepsClientTotal(t *testing.T) {
	uc, _ := newMovementUC()
	in := request("out", "2", "10")
	in.TotalPrice = dec("15")
	company := "  Proveedor SA "
	in.Company = &company

	out, err := uc.Create(context.Background(), owner, in)
	require.NoError(t, err)
	assert.True(t, out.TotalPrice.Equal(decimal.NewFromInt(15)))
	require.NotNil(t, out.Company)
	assert.Equal(t, "Proveedor SA", *out.Company)
}

func TestMovementUseCase_CreateValidation(t *testing.T) {
	uc, tx := newMovementUC()

	in := request("transfer", "-1", "1000000")
	in.StockCardID = "x"
	in.MovementDate = nil
	_, err := uc.Create(context.Background(), owner, in)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, f := range []string{"stock_card_id", "movement_type", "movement_amount", "movement_price", "movement_date"} {
		assert.Contains(t, ve.Fields, f)
	}
	assert.Zero(t, tx.commits)
}

func TestMovementUseCase_CreateOnForeignCardIsNotFound(t *testing.T) {
	uc, tx := newMovementUC()

	_, err := uc.Create(context.Background(), other, request("in", "1", "1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, tx.movs.items)
}

func TestMovementUseCase_UpdatePreservesCreatedAt(t *testing.T) {
	uc, _ := newMovementUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, request("in", "1", "1"))
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC) }
	updated, err := uc.Update(ctx, owner, created.ID, request("out", "4", "2"))
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "out", updated.MovementType)
	assert.True(t, updated.TotalPrice.Equal(decimal.NewFromInt(8)))

	_, err = uc.Update(ctx, other, created.ID, request("out", "4", "2"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, owner, "no-es-uuid", request("out", "4", "2"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementUseCase_GetAndDelete(t *testing.T) {
	uc, _ := newMovementUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, request("in", "1", "1"))
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.GetByID(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, owner, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, owner, created.ID), domain.ErrNotFound)
}

func TestMovementUseCase_ListValidatesFilters(t *testing.T) {
	uc, tx := newMovementUC()
	ctx := context.Background()
	from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.List(ctx, owner, dto.MovementFilterRequest{Type: "transfer"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.List(ctx, owner, dto.MovementFilterRequest{Unit: "gal"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.List(ctx, owner, dto.MovementFilterRequest{From: &from, To: &to})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, tx.movs.filters)

	out, err := uc.List(ctx, owner, dto.MovementFilterRequest{Type: " OUT ", Unit: "KG", ProductName: " har "})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	require.Len(t, tx.movs.filters, 1)
	assert.Equal(t, repository.MovementFilter{ProductName: "har", Type: "out", Unit: "kg"}, tx.movs.filters[0])
}
