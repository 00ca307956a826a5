package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcard-api/internal/application/dto"
	"github.com/jhoicas/stockcard-api/internal/domain"
)

func TestParseID(t *testing.T) {
	const canonical = "3f2b8c1e-9a4d-4c6e-8b1f-0d2e4a6c8e10"
	for _, raw := range []string{
		canonical,
		"3F2B8C1E-9A4D-4C6E-8B1F-0D2E4A6C8E10",
		"urn:uuid:" + canonical,
		"{" + canonical + "}",
	} {
		id, err := dto.ParseID(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, canonical, id, raw)
	}

	_, err := dto.ParseID("no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
