package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

// fakeCardRepo repositorio en memoria con la misma unicidad (dueño, código) que el índice real.
type fakeCardRepo struct {
	cards map[string]entity.StockCard
	reads int
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: map[string]entity.StockCard{}}
}

func (r *fakeCardRepo) duplicated(card *entity.StockCard) bool {
	for _, c := range r.cards {
		if c.ID != card.ID && c.UserID == card.UserID && c.Barcode == card.Barcode {
			return true
		}
	}
	return false
}

func (r *fakeCardRepo) Create(_ context.Context, card *entity.StockCard) error {
	if r.duplicated(card) {
		return domain.ErrDuplicateBarcode
	}
	r.cards[card.ID] = *card
	return nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, userID, id string) (*entity.StockCard, error) {
	r.reads++
	c, ok := r.cards[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCardRepo) GetForShare(ctx context.Context, userID, id string) (*entity.StockCard, error) {
	return r.GetByID(ctx, userID, id)
}

func (r *fakeCardRepo) Update(_ context.Context, card *entity.StockCard) error {
	c, ok := r.cards[card.ID]
	if !ok || c.UserID != card.UserID {
		return domain.ErrNotFound
	}
	if r.duplicated(card) {
		return domain.ErrDuplicateBarcode
	}
	card.CreatedAt = c.CreatedAt
	r.cards[card.ID] = *card
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, userID, id string) error {
	c, ok := r.cards[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *fakeCardRepo) List(_ context.Context, userID string, f repository.StockCardFilter) ([]*entity.StockCard, error) {
	out := []*entity.StockCard{}
	for _, c := range r.cards {
		c := c
		if c.UserID != userID {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(c.ProductName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

const (
	owner = "11111111-1111-1111-1111-111111111111"
	other = "22222222-2222-2222-2222-222222222222"
)

func boolPtr(b bool) *bool { return &b }

func newCardUC() (*StockCardUseCase, *fakeCardRepo) {
	repo := newFakeCardRepo()
	uc := NewStockCardUseCase(repo)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return uc, repo
}

func TestStockCardUseCase_CreateNormalizes(t *testing.T) {
	uc, repo := newCardUC()

	out, err := uc.Create(context.Background(), owner, dto.StockCardRequest{
		ProductName: "  Tornillo  ", Barcode: " 7701 ", Unit: " KG ", Status: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", out.ProductName)
	assert.Equal(t, "7701", out.Barcode)
	assert.Equal(t, "kg", out.Unit)
	assert.Equal(t, owner, out.UserID)
	assert.Equal(t, out.CreatedAt, out.UpdatedAt)
	assert.Len(t, repo.cards, 1)
}

func TestStockCardUseCase_CreateValidation(t *testing.T) {
	uc, repo := newCardUC()

	_, err := uc.Create(context.Background(), owner, dto.StockCardRequest{Barcode: "1", Unit: "gal"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "product_name")
	assert.Contains(t, ve.Fields, "unit")
	assert.Contains(t, ve.Fields, "status")
	assert.Empty(t, repo.cards)
}

func TestStockCardUseCase_BarcodeUniquePerOwner(t *testing.T) {
	uc, _ := newCardUC()
	ctx := context.Background()
	req := dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)}

	_, err := uc.Create(ctx, owner, req)
	require.NoError(t, err)

	_, err = uc.Create(ctx, owner, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)

	_, err = uc.Create(ctx, other, req)
	assert.NoError(t, err, "otro dueño puede usar el mismo código")
}

func TestStockCardUseCase_UpdateKeepsCreatedAt(t *testing.T) {
	uc, repo := newCardUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)

	uc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	updated, err := uc.Update(ctx, owner, created.ID, dto.StockCardRequest{ProductName: "B", Barcode: "X", Unit: "mt", Status: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Zero(t, repo.reads, "la fecha de creación sale de la propia escritura")
	assert.Equal(t, "B", updated.ProductName)
	assert.False(t, updated.Status)
}

func TestStockCardUseCase_UpdateToAnotherCardsBarcode(t *testing.T) {
	uc, _ := newCardUC()
	ctx := context.Background()
	_, err := uc.Create(ctx, owner, dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)
	b, err := uc.Create(ctx, owner, dto.StockCardRequest{ProductName: "B", Barcode: "Y", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)

	_, err = uc.Update(ctx, owner, b.ID, dto.StockCardRequest{ProductName: "B", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)
}

func TestStockCardUseCase_OtherOwnerIsNotFound(t *testing.T) {
	uc, _ := newCardUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, other, created.ID, dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, other, created.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, owner, "no-es-uuid"), domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, owner, created.ID))
	_, err = uc.GetByID(ctx, owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockCardUseCase_AlternateIDFormsReachTheSameCard(t *testing.T) {
	uc, repo := newCardUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, owner, dto.StockCardRequest{ProductName: "A", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, owner, "urn:uuid:"+created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := uc.Update(ctx, owner, strings.ToUpper(created.ID), dto.StockCardRequest{ProductName: "B", Barcode: "X", Unit: "ad", Status: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	require.NoError(t, uc.Delete(ctx, owner, "{"+created.ID+"}"))
	assert.Empty(t, repo.cards)
}

func TestStockCardUseCase_ListFilters(t *testing.T) {
	uc, _ := newCardUC()
	ctx := context.Background()
	for _, r := range []dto.StockCardRequest{
		{ProductName: "Tornillo", Barcode: "1", Unit: "ad", Status: boolPtr(true)},
		{ProductName: "Tuerca", Barcode: "2", Unit: "ad", Status: boolPtr(false)},
	} {
		_, err := uc.Create(ctx, owner, r)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, owner, dto.StockCardFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	inactive, err := uc.List(ctx, owner, dto.StockCardFilterRequest{Status: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, inactive.Items, 1)
	assert.Equal(t, "Tuerca", inactive.Items[0].ProductName)

	byName, err := uc.List(ctx, owner, dto.StockCardFilterRequest{Name: " torn "})
	require.NoError(t, err)
	assert.Len(t, byName.Items, 1)

	none, err := uc.List(ctx, other, dto.StockCardFilterRequest{})
	require.NoError(t, err)
	assert.NotNil(t, none.Items)
	assert.Empty(t, none.Items)
}
