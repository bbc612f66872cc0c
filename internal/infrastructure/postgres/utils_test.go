package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePatternQuitaTildes(t *testing.T) {
	// El patrón va sin tildes; la columna se compara con unaccent(), así
	// "Pérez" guardado y "Pérez" buscado coinciden aunque cualquiera de los
	// dos venga sin acento.
	assert.Equal(t, "%Perez%", likePattern("Pérez"))
	assert.Equal(t, "%Jose Nunez%", likePattern("José Núñez"))
	assert.Equal(t, "%sin-acentos%", likePattern("sin-acentos"))
}

func TestLikePatternEscapaComodines(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c\\d%`, likePattern(`c\d`))
}

func TestClausulaBusquedaNormalizaColumnas(t *testing.T) {
	got := clausulaBusqueda(3, "nombre", "apellido")
	assert.Equal(t, "(unaccent(nombre) ILIKE $3 OR unaccent(apellido) ILIKE $3)", got)

	got = clausulaBusqueda(1, "e.dni")
	assert.Equal(t, "(unaccent(e.dni) ILIKE $1)", got)
}
