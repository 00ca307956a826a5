// Package export genera el reporte de stock en tiempo real como hoja de cálculo.
package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
)

const (
	stockSheet   = "Stock"
	summarySheet = "Resumen"
)

var stockHeader = []interface{}{
	"Producto", "Código de barras", "Unidad", "Entradas", "Salidas", "Actual",
}

// ExcelReportGenerator implementa analytics.ReportRenderer con excelize.
type ExcelReportGenerator struct{}

// NewExcelReportGenerator construye el generador.
func NewExcelReportGenerator() *ExcelReportGenerator { return &ExcelReportGenerator{} }

// Render arma un libro con una hoja de detalle y otra de resumen por unidad.
func (g *ExcelReportGenerator) Render(_ context.Context, report *analytics.RealTimeReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	qty, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := f.SetSheetRow(stockSheet, "A1", &stockHeader); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(stockSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}
	for i, it := range report.Items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			it.ProductName,
			it.Barcode,
			it.Unit,
			it.QuantityIn.InexactFloat64(),
			it.QuantityOut.InexactFloat64(),
			it.CurrentQuantity.InexactFloat64(),
		}
		if err := f.SetSheetRow(stockSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if n := len(report.Items); n > 0 {
		if err := f.SetCellStyle(stockSheet, "D2", fmt.Sprintf("F%d", n+1), qty); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(stockSheet, "A", "A", 40)
	_ = f.SetColWidth(stockSheet, "B", "B", 22)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	_ = f.SetCellValue(summarySheet, "A1", report.Title)
	_ = f.SetCellValue(summarySheet, "A2", "Generado (UTC)")
	_ = f.SetCellValue(summarySheet, "B2", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	_ = f.SetCellValue(summarySheet, "A3", "Tarjetas activas")
	_ = f.SetCellValue(summarySheet, "B3", report.Summary.Cards)
	_ = f.SetCellValue(summarySheet, "A5", "Unidad")
	_ = f.SetCellValue(summarySheet, "B5", "Actual")
	_ = f.SetCellStyle(summarySheet, "A1", "A1", bold)
	_ = f.SetCellStyle(summarySheet, "A5", "B5", bold)

	units := make([]string, 0, len(report.Summary.CurrentByUnit))
	for u := range report.Summary.CurrentByUnit {
		units = append(units, u)
	}
	sort.Strings(units)
	for i, u := range units {
		r := i + 6
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), u)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), report.Summary.CurrentByUnit[u].InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
