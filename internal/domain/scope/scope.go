// Package scope resuelve el alcance de visibilidad de un principal sobre los
// recursos con dueño: admin ve todo; administrativo solo lo que creó (o los
// expedientes donde es abogado responsable; la columna de propiedad es un
// parámetro, no una constante).
//
// Un registro fuera de alcance se reporta como "no encontrado", nunca como
// "prohibido": un no-admin no debe poder confirmar la existencia de registros
// ajenos. La gestión de usuarios es la excepción: ahí se bloquea el tipo de
// recurso completo con 403.
package scope

import "github.com/despacho/expedientes-api/internal/domain/entity"

// Columnas de propiedad usadas por las entidades con dueño.
const (
	ColumnaCreador = "usuario_creador_id"
	ColumnaAbogado = "abogado_responsable_id"
)

// Scope identifica al principal autenticado.
type Scope struct {
	UserID string
	Rol    string
}

// EsAdmin indica si el principal tiene rol admin.
func (s Scope) EsAdmin() bool { return s.Rol == entity.RolAdmin }

// Filtro es el predicado de propiedad que los repositorios aplican en cada
// lectura y mutación. Un filtro vacío (Columna == "") equivale a "ver todo".
type Filtro struct {
	Columna string
	UserID  string
}

// Todo devuelve el filtro que no restringe.
func Todo() Filtro { return Filtro{} }

// EsTodo indica que el filtro no restringe.
func (f Filtro) EsTodo() bool { return f.Columna == "" }

// Filtro computa el predicado para la columna de propiedad indicada:
// admin -> ver todo; cualquier otro rol -> columna = UserID.
func (s Scope) Filtro(columna string) Filtro {
	if s.EsAdmin() {
		return Todo()
	}
	return Filtro{Columna: columna, UserID: s.UserID}
}

// Permite evalúa el predicado en memoria contra el valor de la columna de
// propiedad de un registro ya cargado.
func (f Filtro) Permite(valorColumna string) bool {
	if f.EsTodo() {
		return true
	}
	return f.UserID == valorColumna
}
