package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockcard-api/internal/domain"
)

func TestValidationError_EsInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear tarjeta: %w", &domain.ValidationError{Fields: map[string]string{
		"unit":    "debe ser uno de: ad mt lt kg",
		"barcode": "es requerido",
	}})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, err.Error(), "barcode: es requerido; unit:")
}

func TestNewValidationError(t *testing.T) {
	ve := domain.NewValidationError("status", "es requerido")
	assert.Equal(t, "es requerido", ve.Fields["status"])
	assert.False(t, errors.Is(ve, domain.ErrNotFound))
}
