package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockcard-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNormalize_DosDecimales(t *testing.T) {
	assert.True(t, inventory.Normalize(dec("10.005")).Equal(dec("10.01")))
	assert.True(t, inventory.Normalize(dec("-0.125")).Equal(dec("-0.13")))
	assert.Equal(t, "3.10", inventory.Normalize(dec("3.1")).StringFixed(inventory.Precision))
}

func TestTotalPrice(t *testing.T) {
	assert.True(t, inventory.TotalPrice(dec("2.5"), dec("3.333")).Equal(dec("8.33")))
	assert.True(t, inventory.TotalPrice(decimal.Zero, dec("99.99")).IsZero())
}

func TestInRange(t *testing.T) {
	cases := map[string]bool{
		"0":          true,
		"999999.99":  true,
		"999999.994": true, // redondea a 999999.99
		"999999.995": false,
		"1000000":    false,
		"-0.01":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, inventory.InRange(dec(in)), in)
	}
}

func TestNet(t *testing.T) {
	assert.True(t, inventory.Net(dec("12"), dec("3")).Equal(dec("9")))
	assert.True(t, inventory.Net(dec("1.10"), dec("2.20")).Equal(dec("-1.10")))
}
