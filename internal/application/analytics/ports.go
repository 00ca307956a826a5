package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
)

// RealTimeReport datos de entrada de los exportadores del reporte de stock.
type RealTimeReport struct {
	Title       string
	GeneratedAt time.Time
	Items       []dto.RealTimeStockResponse
	Summary     dto.RealTimeSummary
}

// ReportRenderer convierte el reporte en un archivo (xlsx, pdf) y devuelve sus bytes.
type ReportRenderer interface {
	Render(ctx context.Context, report *RealTimeReport) ([]byte, error)
}
