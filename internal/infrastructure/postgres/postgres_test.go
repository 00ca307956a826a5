package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/application/inventory"
	"github.com/jhoicas/stockcard-api/internal/application/usecase"
	"github.com/jhoicas/stockcard-api/internal/domain"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/migrate"
)

// Integración contra un PostgreSQL real: TEST_DATABASE_URL=postgres://... go test ./internal/infrastructure/postgres/
func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrate.Up(ctx, db, config.DriverPostgres))
	return pool
}

func newUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        uuid.New().String() + "@test.com",
		PasswordHash: "x",
		Name:         "test",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, postgres.NewUserRepository(pool).Create(context.Background(), u))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u.ID
}

func TestPostgres_StockLifecycle(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	owner := newUser(t, pool)

	cards := usecase.NewStockCardUseCase(postgres.NewStockCardRepository(pool))
	moves := inventory.NewMovementUseCase(postgres.NewTxRunner(pool), postgres.NewStockMovementRepository(pool))
	realTime := analytics.NewRealTimeStockUseCase(postgres.NewRealTimeStockRepository(pool), nil, nil)

	active := true
	card, err := cards.Create(ctx, owner, dto.StockCardRequest{ProductName: "Harina", Barcode: "PG-1", Unit: "kg", Status: &active})
	require.NoError(t, err)

	_, err = cards.Create(ctx, owner, dto.StockCardRequest{ProductName: "Otra", Barcode: "PG-1", Unit: "kg", Status: &active})
	assert.ErrorIs(t, err, domain.ErrDuplicateBarcode)

	for _, m := range []struct{ typ, amount string }{{"in", "10"}, {"out", "3.25"}, {"in", "2"}} {
		a := decimal.RequireFromString(m.amount)
		p := decimal.RequireFromString("1.50")
		_, err := moves.Create(ctx, owner, dto.StockMovementRequest{
			StockCardID:    card.ID,
			MovementType:   m.typ,
			MovementAmount: &a,
			MovementPrice:  &p,
			MovementDate:   &dto.Date{Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		})
		require.NoError(t, err)
	}

	rt, err := realTime.Compute(ctx, owner)
	require.NoError(t, err)
	require.Len(t, rt.Items, 1)
	assert.True(t, rt.Items[0].QuantityIn.Equal(decimal.NewFromInt(12)))
	assert.True(t, rt.Items[0].QuantityOut.Equal(decimal.RequireFromString("3.25")))
	assert.True(t, rt.Items[0].CurrentQuantity.Equal(decimal.RequireFromString("8.75")))

	list, err := moves.List(ctx, owner, dto.MovementFilterRequest{Type: "out"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Harina", list.Items[0].Card.ProductName)

	require.NoError(t, cards.Delete(ctx, owner, card.ID))
	list, err = moves.List(ctx, owner, dto.MovementFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
