package serie_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despacho/expedientes-api/internal/domain/serie"
)

// relojFijo devuelve siempre el 15/06/2025 para que los tests no dependan del
// reloj de pared.
func relojFijo() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestAnioCortoYLargo(t *testing.T) {
	assert.Equal(t, "25", serie.AnioCorto(relojFijo))
	assert.Equal(t, "2025", serie.AnioLargo(relojFijo))
}

func TestFormatearBarra(t *testing.T) {
	assert.Equal(t, "1/25", serie.Formatear(serie.FormatoBarra, 1, "25"))
	assert.Equal(t, "142/25", serie.Formatear(serie.FormatoBarra, 142, "25"))
}

func TestFormatearAnioPadded(t *testing.T) {
	assert.Equal(t, "2025-0001", serie.Formatear(serie.FormatoAnioPadded, 1, "2025"))
	assert.Equal(t, "2025-0142", serie.Formatear(serie.FormatoAnioPadded, 142, "2025"))
	// secuencias de más de 4 dígitos no se truncan
	assert.Equal(t, "2025-12345", serie.Formatear(serie.FormatoAnioPadded, 12345, "2025"))
}

// Propiedad: Parsear(Formatear(n, anio)) recupera exactamente (n, anio).
func TestRoundTripBarra(t *testing.T) {
	for _, n := range []int{1, 9, 10, 99, 1000} {
		numero := serie.Formatear(serie.FormatoBarra, n, "25")
		sec, anio, err := serie.Parsear(serie.FormatoBarra, numero)
		require.NoError(t, err)
		assert.Equal(t, n, sec, "la secuencia debe sobrevivir el round-trip")
		assert.Equal(t, "25", anio)
	}
}

func TestRoundTripAnioPadded(t *testing.T) {
	for _, n := range []int{1, 42, 9999} {
		numero := serie.Formatear(serie.FormatoAnioPadded, n, "2025")
		sec, anio, err := serie.Parsear(serie.FormatoAnioPadded, numero)
		require.NoError(t, err)
		assert.Equal(t, n, sec)
		assert.Equal(t, "2025", anio)
	}
}

func TestParsearRechazaFormatosAjenos(t *testing.T) {
	_, _, err := serie.Parsear(serie.FormatoBarra, "2025-0001")
	assert.Error(t, err, "un número aaaa-nnnn no es válido en la serie n/aa")

	_, _, err = serie.Parsear(serie.FormatoAnioPadded, "3/25")
	assert.Error(t, err)

	_, _, err = serie.Parsear(serie.FormatoBarra, "abc/25")
	assert.Error(t, err)
}

func TestSiguiente(t *testing.T) {
	assert.Equal(t, 1, serie.Siguiente(0), "serie vacía arranca en 1")
	assert.Equal(t, 8, serie.Siguiente(7))
	assert.Equal(t, 1, serie.Siguiente(-3), "máximos negativos se tratan como serie vacía")
}
