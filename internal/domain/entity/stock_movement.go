package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// IsValidMovementType indica si t es in u out.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// StockMovement representa una transacción de entrada o salida contra una tarjeta.
// Amount, Price y TotalPrice se guardan con 2 decimales; TotalPrice no se recalcula.
type StockMovement struct {
	ID          string
	UserID      string
	StockCardID string
	Type        string // in, out
	Amount      decimal.Decimal
	Price       decimal.Decimal
	TotalPrice  decimal.Decimal
	Date        time.Time
	Company     *string // opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Card solo viene cargada en lecturas con JOIN a stock_card.
	Card *StockCardInfo
}

// StockCardInfo datos de la tarjeta que acompañan a un movimiento en listados.
type StockCardInfo struct {
	ProductName string
	Barcode     string
	Unit        string
}
