package entity

import "github.com/shopspring/decimal"

// RealTimeStock es una fila de la vista vw_rt_stock: cantidades acumuladas por tarjeta.
// No se persiste; se recalcula en cada lectura.
type RealTimeStock struct {
	UserID          string
	StockCardID     string
	ProductName     string
	Barcode         string
	Unit            string
	Status          bool
	QuantityIn      decimal.Decimal
	QuantityOut     decimal.Decimal
	CurrentQuantity decimal.Decimal // QuantityIn - QuantityOut
}
