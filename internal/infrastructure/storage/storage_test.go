package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/storage"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/migrate"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	st, err := storage.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, migrate.Up(ctx, st.SQL, st.Driver))

	u, err := st.Users.GetByEmail(ctx, "nadie@test.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	user := &entity.User{ID: "00000000-0000-0000-0000-0000000000aa", Email: "a@test.com", PasswordHash: "x", Name: "A"}
	require.NoError(t, st.Users.Create(ctx, user))

	rows, err := st.RealTime.ListActive(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "mysql"}, logger.Nop())
	assert.Error(t, err)
}
