package dto

import "github.com/shopspring/decimal"

// RealTimeStockResponse fila del reporte de stock en tiempo real.
type RealTimeStockResponse struct {
	StockCardID     string          `json:"stock_card_id"`
	ProductName     string          `json:"product_name"`
	Barcode         string          `json:"barcode"`
	Unit            string          `json:"unit"`
	Status          bool            `json:"status"`
	QuantityIn      decimal.Decimal `json:"quantity_in"`
	QuantityOut     decimal.Decimal `json:"quantity_out"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
}

// RealTimeSummary totales del reporte: tarjetas y existencias netas por unidad.
type RealTimeSummary struct {
	Cards         int                        `json:"cards"`
	CurrentByUnit map[string]decimal.Decimal `json:"current_by_unit"`
}

// RealTimeStockListResponse salida de GET /api/real-time.
type RealTimeStockListResponse struct {
	Items   []RealTimeStockResponse `json:"items"`
	Summary RealTimeSummary         `json:"summary"`
}
