// Package serie implementa la numeración correlativa de registros.
//
// Conviven dos formatos, configurados por serie (no por el llamador):
//
//	FormatoBarra      "n/aa"      expedientes simple y actuaciones, correlativo por año (y tipo)
//	FormatoAnioPadded "aaaa-nnnn" expedientes completos, correlativo por año con relleno a 4 dígitos
//
// El cálculo "máximo existente + 1" es una lectura seguida de escritura: dos
// creaciones concurrentes pueden calcular el mismo candidato. La unicidad la
// garantiza el constraint único de la base; el asignador reintenta acotado
// ante violación (ver application/usecase).
package serie

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Formato identifica la convención de numeración de una serie.
type Formato int

const (
	// FormatoBarra produce "n/aa" con aa = año de 2 dígitos.
	FormatoBarra Formato = iota
	// FormatoAnioPadded produce "aaaa-nnnn" con nnnn relleno a 4 dígitos.
	FormatoAnioPadded
)

var (
	reBarra      = regexp.MustCompile(`^(\d+)/(\d{2})$`)
	reAnioPadded = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
)

// Reloj abstrae la hora actual para que los tests fijen el año.
type Reloj func() time.Time

// RelojSistema es el reloj por defecto.
func RelojSistema() time.Time { return time.Now() }

// AnioCorto devuelve el año en 2 dígitos ("25") para el reloj dado.
func AnioCorto(now Reloj) string {
	return fmt.Sprintf("%02d", now().Year()%100)
}

// AnioLargo devuelve el año en 4 dígitos ("2025") para el reloj dado.
func AnioLargo(now Reloj) string {
	return strconv.Itoa(now().Year())
}

// Formatear arma el número de serie para la secuencia y año dados.
// En FormatoBarra anio es de 2 dígitos; en FormatoAnioPadded de 4.
func Formatear(f Formato, secuencia int, anio string) string {
	switch f {
	case FormatoAnioPadded:
		return fmt.Sprintf("%s-%04d", anio, secuencia)
	default:
		return fmt.Sprintf("%d/%s", secuencia, anio)
	}
}

// Parsear recupera (secuencia, año) de un número formateado.
// Es la inversa exacta de Formatear para el mismo formato.
func Parsear(f Formato, numero string) (secuencia int, anio string, err error) {
	var m []string
	switch f {
	case FormatoAnioPadded:
		m = reAnioPadded.FindStringSubmatch(numero)
		if m == nil {
			return 0, "", fmt.Errorf("serie: %q no cumple el formato aaaa-nnnn", numero)
		}
		n, _ := strconv.Atoi(m[2])
		return n, m[1], nil
	default:
		m = reBarra.FindStringSubmatch(numero)
		if m == nil {
			return 0, "", fmt.Errorf("serie: %q no cumple el formato n/aa", numero)
		}
		n, _ := strconv.Atoi(m[1])
		return n, m[2], nil
	}
}

// Siguiente devuelve el candidato a partir del máximo ya asignado en el
// alcance de la serie (0 si no hay registros previos).
func Siguiente(maxActual int) int {
	if maxActual < 0 {
		maxActual = 0
	}
	return maxActual + 1
}
