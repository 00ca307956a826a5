package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST/PUT /api/stock-movements.
// TotalPrice es opcional: si falta se calcula como cantidad * precio.
type StockMovementRequest struct {
	StockCardID    string           `json:"stock_card_id" validate:"required,uuid"`
	MovementType   string           `json:"movement_type" validate:"required,oneof=in out"`
	MovementAmount *decimal.Decimal `json:"movement_amount" validate:"required"`
	MovementPrice  *decimal.Decimal `json:"movement_price" validate:"required"`
	TotalPrice     *decimal.Decimal `json:"total_price"`
	MovementDate   *Date            `json:"movement_date" validate:"required"`
	Company        *string          `json:"company" validate:"omitempty,max=255"`
}

// MovementFilterRequest query params de GET /api/stock-movements.
type MovementFilterRequest struct {
	ProductName string
	Type        string
	Unit        string
	From        *time.Time
	To          *time.Time
}

// MovementCardResponse datos de la tarjeta asociada a un movimiento.
type MovementCardResponse struct {
	ProductName string `json:"product_name"`
	Barcode     string `json:"barcode"`
	Unit        string `json:"unit"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	StockCardID    string                `json:"stock_card_id"`
	MovementType   string                `json:"movement_type"`
	MovementAmount decimal.Decimal       `json:"movement_amount"`
	MovementPrice  decimal.Decimal       `json:"movement_price"`
	TotalPrice     decimal.Decimal       `json:"total_price"`
	MovementDate   time.Time             `json:"movement_date"`
	Company        *string               `json:"company"`
	Card           *MovementCardResponse `json:"card,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// StockMovementListResponse listado de movimientos con datos de su tarjeta.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
}
