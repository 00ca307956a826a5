package entity

import "time"

// Unidades de medida admitidas para una tarjeta de stock.
const (
	UnitPiece    = "ad" // adet / pieza
	UnitMetre    = "mt"
	UnitLitre    = "lt"
	UnitKilogram = "kg"
)

// Units lista cerrada de unidades válidas (orden estable para mensajes).
var Units = []string{UnitPiece, UnitMetre, UnitLitre, UnitKilogram}

// IsValidUnit indica si u pertenece a Units.
func IsValidUnit(u string) bool {
	for _, v := range Units {
		if v == u {
			return true
		}
	}
	return false
}

// StockCard representa un producto trazable identificado por código de barras.
// (UserID, Barcode) es único; lo garantiza un índice único en la base de datos.
type StockCard struct {
	ID          string
	UserID      string // dueño
	ProductName string
	Barcode     string
	Unit        string // ad, mt, lt, kg
	Status      bool   // activa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
