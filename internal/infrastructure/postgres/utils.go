package postgres

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/despacho/expedientes-api/internal/domain/scope"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

var quitarDiacriticos = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizarBusqueda quita tildes del término de búsqueda. La columna se
// normaliza del lado SQL con unaccent(), así "Pérez" y "Perez" coinciden en
// ambas direcciones (ILIKE ya cubre mayúsculas/minúsculas).
func normalizarBusqueda(s string) string {
	out, _, err := transform.String(quitarDiacriticos, s)
	if err != nil {
		return s
	}
	return out
}

// likePattern arma el patrón de subcadena para ILIKE, escapando comodines.
func likePattern(search string) string {
	s := normalizarBusqueda(search)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

// clausulaBusqueda arma el predicado de búsqueda por subcadena sobre las
// columnas dadas, con el patrón en el placeholder $n. Las columnas pasan por
// unaccent() para espejar la normalización que likePattern aplica al patrón;
// la extensión se crea en las migraciones.
func clausulaBusqueda(n int, columnas ...string) string {
	partes := make([]string, len(columnas))
	for i, col := range columnas {
		partes[i] = fmt.Sprintf("unaccent(%s) ILIKE $%d", col, n)
	}
	return "(" + strings.Join(partes, " OR ") + ")"
}

// scopeClause agrega el predicado de propiedad a la lista de condiciones.
// Un filtro "todo" no agrega nada.
func scopeClause(where []string, args []any, f scope.Filtro) ([]string, []any) {
	if f.EsTodo() {
		return where, args
	}
	args = append(args, f.UserID)
	where = append(where, fmt.Sprintf("%s = $%d", f.Columna, len(args)))
	return where, args
}

// scopeClauseAliased es scopeClause con alias de tabla (consultas con JOIN).
func scopeClauseAliased(where []string, args []any, f scope.Filtro, alias string) ([]string, []any) {
	if f.EsTodo() {
		return where, args
	}
	args = append(args, f.UserID)
	where = append(where, fmt.Sprintf("%s.%s = $%d", alias, f.Columna, len(args)))
	return where, args
}

// paginacion normaliza page/limit y devuelve (limit, offset).
func paginacion(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return limit, (page - 1) * limit
}
