// Package pdf genera el reporte de stock en tiempo real en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                   │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Código | Unidad | Entradas | Salidas | Actual │
//	│         (debajo de cada fila, el código de barras Code128)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: tarjetas + existencias por unidad                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.ReportRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	withBarcodes bool
}

// NewMarotoPDFGenerator construye el generador. withBarcodes añade el Code128 de cada tarjeta.
func NewMarotoPDFGenerator(withBarcodes bool) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{withBarcodes: withBarcodes}
}

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(_ context.Context, report *analytics.RealTimeReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(report.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range summaryRows(report.Summary) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report *analytics.RealTimeReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Código", 2, align.Left),
		h("Unidad", 1, align.Center),
		h("Entradas", 2, align.Right),
		h("Salidas", 1, align.Right),
		h("Actual", 2, align.Right),
	)
}

// tableRows: una fila por tarjeta y, opcionalmente, su código de barras.
func (g *MarotoPDFGenerator) tableRows(items []dto.RealTimeStockResponse) []core.Row {
	result := make([]core.Row, 0, len(items)*2)
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(it.Barcode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatQuantity(it.QuantityIn.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(formatQuantity(it.QuantityOut.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatQuantity(it.CurrentQuantity.StringFixed(2)),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
		if g.withBarcodes && it.Barcode != "" {
			result = append(result, row.New(12).Add(
				col.New(4),
				col.New(4).Add(code.NewBar(it.Barcode, props.Barcode{Percent: 90, Proportion: props.Proportion{Width: 20, Height: 4}})),
				col.New(4),
			))
		}
	}
	if len(items) == 0 {
		result = append(result, row.New(10).Add(col.New(12).Add(
			text.New("No hay tarjetas activas.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	return result
}

// summaryRows: cantidad de tarjetas y existencias netas por unidad.
func summaryRows(s dto.RealTimeSummary) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Tarjetas activas: %d", s.Cards), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	units := make([]string, 0, len(s.CurrentByUnit))
	for u := range s.CurrentByUnit {
		units = append(units, u)
	}
	sort.Strings(units)
	for _, u := range units {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(u, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(formatQuantity(s.CurrentByUnit[u].StringFixed(2)), props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(6),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatQuantity inserta puntos de miles y coma decimal en un string "1234.50".
// Ej: "25000.00" → "25.000,00", "-1000.5" → "-1.000,5"
func formatQuantity(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i+1:]
			break
		}
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+1)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return sign + string(buf)
}
