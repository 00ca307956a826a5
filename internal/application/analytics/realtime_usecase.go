// Package analytics contiene los casos de uso de lectura agregada:
// el reporte de stock en tiempo real y sus exportaciones.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain/entity"
	"github.com/jhoicas/stockcard-api/internal/domain/inventory"
	"github.com/jhoicas/stockcard-api/internal/domain/repository"
)

// ReportTitle título de los archivos exportados.
const ReportTitle = "Stock en tiempo real"

// RealTimeStockUseCase calcula las existencias actuales por tarjeta activa del dueño.
//
// Fuente de datos: RealTimeStockRepository (vista vw_rt_stock, recalculada en cada lectura).
// No hay caché: cada llamada refleja el último movimiento confirmado.
type RealTimeStockUseCase struct {
	repo repository.RealTimeStockRepository
	xlsx ReportRenderer
	pdf  ReportRenderer
	now  func() time.Time
}

// NewRealTimeStockUseCase construye el caso de uso. xlsx y pdf pueden ser nil si no se exporta.
func NewRealTimeStockUseCase(repo repository.RealTimeStockRepository, xlsx, pdf ReportRenderer) *RealTimeStockUseCase {
	return &RealTimeStockUseCase{repo: repo, xlsx: xlsx, pdf: pdf, now: time.Now}
}

// Compute devuelve una fila por tarjeta activa, incluidas las que no tienen movimientos (0/0/0).
func (uc *RealTimeStockUseCase) Compute(ctx context.Context, userID string) (*dto.RealTimeStockListResponse, error) {
	rows, err := uc.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RealTimeStockResponse, 0, len(rows))
	summary := dto.RealTimeSummary{CurrentByUnit: map[string]decimal.Decimal{}}
	for _, r := range rows {
		item := toRealTimeResponse(r)
		items = append(items, item)
		summary.Cards++
		summary.CurrentByUnit[item.Unit] = summary.CurrentByUnit[item.Unit].Add(item.CurrentQuantity)
	}
	return &dto.RealTimeStockListResponse{Items: items, Summary: summary}, nil
}

// ExportXLSX genera el reporte como hoja de cálculo.
func (uc *RealTimeStockUseCase) ExportXLSX(ctx context.Context, userID string) ([]byte, error) {
	return uc.export(ctx, userID, uc.xlsx, "xlsx")
}

// ExportPDF genera el reporte como PDF con el código de barras de cada tarjeta.
func (uc *RealTimeStockUseCase) ExportPDF(ctx context.Context, userID string) ([]byte, error) {
	return uc.export(ctx, userID, uc.pdf, "pdf")
}

func (uc *RealTimeStockUseCase) export(ctx context.Context, userID string, r ReportRenderer, format string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("analytics: exportador %s no configurado", format)
	}
	list, err := uc.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, &RealTimeReport{
		Title:       ReportTitle,
		GeneratedAt: uc.now().UTC(),
		Items:       list.Items,
		Summary:     list.Summary,
	})
}

// toRealTimeResponse recalcula current = in - out para no depender del redondeo del motor.
func toRealTimeResponse(r *entity.RealTimeStock) dto.RealTimeStockResponse {
	in := inventory.Normalize(r.QuantityIn)
	out := inventory.Normalize(r.QuantityOut)
	return dto.RealTimeStockResponse{
		StockCardID:     r.StockCardID,
		ProductName:     r.ProductName,
		Barcode:         r.Barcode,
		Unit:            r.Unit,
		Status:          r.Status,
		QuantityIn:      in,
		QuantityOut:     out,
		CurrentQuantity: inventory.Net(in, out),
	}
}
