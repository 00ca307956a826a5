package inventory

import "github.com/shopspring/decimal"

// Precision decimales con los que se guardan cantidades y precios (NUMERIC(8,2)).
const Precision int32 = 2

// MaxAmount límite exclusivo que admite una columna NUMERIC(8,2).
var MaxAmount = decimal.NewFromInt(1_000_000)

// Normalize redondea a Precision decimales (half away from zero).
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// TotalPrice = cantidad * precio unitario, redondeado a Precision.
// Solo se usa cuando el cliente no envía total_price.
func TotalPrice(amount, price decimal.Decimal) decimal.Decimal {
	return Normalize(amount.Mul(price))
}

// InRange indica si d cabe en NUMERIC(8,2) y no es negativo.
func InRange(d decimal.Decimal) bool {
	n := Normalize(d)
	return !n.IsNegative() && n.LessThan(MaxAmount)
}

// Net devuelve entradas - salidas.
func Net(in, out decimal.Decimal) decimal.Decimal {
	return Normalize(in.Sub(out))
}
