package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/dto"
)

func TestMarotoPDFGenerator_Render(t *testing.T) {
	report := &analytics.RealTimeReport{
		Title:       analytics.ReportTitle,
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Items: []dto.RealTimeStockResponse{{
			ProductName:     "Cable",
			Barcode:         "ABC-123",
			Unit:            "mt",
			QuantityIn:      decimal.RequireFromString("10.50"),
			CurrentQuantity: decimal.RequireFromString("10.50"),
		}},
		Summary: dto.RealTimeSummary{
			Cards:         1,
			CurrentByUnit: map[string]decimal.Decimal{"mt": decimal.RequireFromString("10.50")},
		},
	}

	out, err := NewMarotoPDFGenerator(true).Render(context.Background(), report)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestFormatQuantity(t *testing.T) {
	cases := map[string]string{
		"0.00":       "0,00",
		"999.50":     "999,50",
		"25000.00":   "25.000,00",
		"1000000.25": "1.000.000,25",
		"-1000.5":    "-1.000,5",
		"12":         "12",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatQuantity(in), in)
	}
}
