package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsNumeroSQLSinExclusion(t *testing.T) {
	// En el alta no hay id propio: la cadena vacía no debe llegar como
	// parámetro porque la columna id es uuid y el cast falla.
	query, args := existsNumeroSQL("DEC-2025-001", "")

	require.Len(t, args, 1)
	assert.Equal(t, "DEC-2025-001", args[0])
	assert.NotContains(t, query, "$2")
}

func TestExistsNumeroSQLConExclusion(t *testing.T) {
	query, args := existsNumeroSQL("DEC-2025-001", "5f1c9b1e-9d1a-4e6b-8f33-2a7c640d8aa1")

	require.Len(t, args, 2)
	assert.Contains(t, query, "id <> $2")
	assert.Equal(t, "5f1c9b1e-9d1a-4e6b-8f33-2a7c640d8aa1", args[1])
}
