package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/dto"
)

func TestExcelReportGenerator_Render(t *testing.T) {
	report := &analytics.RealTimeReport{
		Title:       analytics.ReportTitle,
		GeneratedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Items: []dto.RealTimeStockResponse{{
			ProductName:     "Tornillo",
			Barcode:         "7701234",
			Unit:            "ad",
			Status:          true,
			QuantityIn:      decimal.NewFromInt(12),
			QuantityOut:     decimal.NewFromInt(3),
			CurrentQuantity: decimal.NewFromInt(9),
		}},
		Summary: dto.RealTimeSummary{
			Cards:         1,
			CurrentByUnit: map[string]decimal.Decimal{"ad": decimal.NewFromInt(9)},
		},
	}

	out, err := NewExcelReportGenerator().Render(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{stockSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Producto", rows[0][0])
	assert.Equal(t, "Tornillo", rows[1][0])
	assert.Equal(t, "7701234", rows[1][1])

	raw, err := f.GetCellValue(stockSheet, "F2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "9", raw)

	unit, err := f.GetCellValue(summarySheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "ad", unit)
}

func TestExcelReportGenerator_EmptyReport(t *testing.T) {
	out, err := NewExcelReportGenerator().Render(context.Background(), &analytics.RealTimeReport{
		Title:   analytics.ReportTitle,
		Summary: dto.RealTimeSummary{CurrentByUnit: map[string]decimal.Decimal{}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
