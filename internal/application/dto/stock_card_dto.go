package dto

import "time"

// StockCardRequest body para crear o reemplazar una tarjeta de stock.
// Status es puntero para distinguir "false" de "ausente".
type StockCardRequest struct {
	ProductName string `json:"product_name" validate:"required,max=255"`
	Barcode     string `json:"barcode" validate:"required,max=100"`
	Unit        string `json:"unit" validate:"required,oneof=ad mt lt kg"`
	Status      *bool  `json:"status" validate:"required"`
}

// StockCardFilterRequest query params de GET /api/stock-cards.
type StockCardFilterRequest struct {
	Name    string
	Barcode string
	Unit    string
	Status  *bool
}

// StockCardResponse salida de una tarjeta.
type StockCardResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ProductName string    `json:"product_name"`
	Barcode     string    `json:"barcode"`
	Unit        string    `json:"unit"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockCardListResponse listado de tarjetas.
type StockCardListResponse struct {
	Items []StockCardResponse `json:"items"`
}
