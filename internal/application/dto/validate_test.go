package dto_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func TestValidate_StockCardRequestValido(t *testing.T) {
	in := dto.StockCardRequest{ProductName: "Tornillo", Barcode: "869000000001", Unit: "ad", Status: boolPtr(false)}
	assert.NoError(t, dto.Validate(in))
}

func TestValidate_StockCardRequestCamposFaltantes(t *testing.T) {
	err := dto.Validate(dto.StockCardRequest{Unit: "caja"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "es requerido", ve.Fields["product_name"])
	assert.Equal(t, "es requerido", ve.Fields["barcode"])
	assert.Equal(t, "es requerido", ve.Fields["status"], "status ausente no es false")
	assert.Equal(t, "debe ser uno de: ad mt lt kg", ve.Fields["unit"])
}

func TestValidate_StockMovementRequest(t *testing.T) {
	amount := decimal.NewFromInt(10)
	in := dto.StockMovementRequest{
		StockCardID:    "no-es-uuid",
		MovementType:   "transfer",
		MovementAmount: &amount,
	}
	err := dto.Validate(in)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "debe ser un UUID", ve.Fields["stock_card_id"])
	assert.Equal(t, "debe ser uno de: in out", ve.Fields["movement_type"])
	assert.Equal(t, "es requerido", ve.Fields["movement_price"])
	assert.Equal(t, "es requerido", ve.Fields["movement_date"])
	assert.NotContains(t, ve.Fields, "movement_amount")
	assert.NotContains(t, ve.Fields, "total_price", "total_price es opcional")
}

func TestDate_AceptaFormatosDeFormulario(t *testing.T) {
	cases := map[string]time.Time{
		`"2025-08-12"`:           time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		`"2025-08-12T10:30"`:     time.Date(2025, 8, 12, 10, 30, 0, 0, time.UTC),
		`"2025-08-12 10:30:15"`:  time.Date(2025, 8, 12, 10, 30, 15, 0, time.UTC),
		`"2025-08-12T10:30:00Z"`: time.Date(2025, 8, 12, 10, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		var d dto.Date
		require.NoError(t, json.Unmarshal([]byte(raw), &d), raw)
		assert.True(t, want.Equal(d.Time), raw)
	}

	var d dto.Date
	assert.Error(t, json.Unmarshal([]byte(`"12/08/2025"`), &d))
}
