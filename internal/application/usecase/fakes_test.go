package usecase_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/scope"
	"github.com/despacho/expedientes-api/internal/domain/serie"
	"github.com/despacho/expedientes-api/pkg/logger"
)

// relojFijo devuelve siempre el mismo instante (15/06/2025) para que las
// series de numeración sean deterministas.
func relojFijo() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "disabled"})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio en memoria. Reproducen los contratos relevantes:
// constraint único, filtro de propiedad y nil como "no encontrado".
// ──────────────────────────────────────────────────────────────────────────────

type fakeExpSimpleRepo struct {
	mu    sync.Mutex
	items map[string]*entity.ExpedienteSimple
}

func newFakeExpSimpleRepo() *fakeExpSimpleRepo {
	return &fakeExpSimpleRepo{items: make(map[string]*entity.ExpedienteSimple)}
}

func (r *fakeExpSimpleRepo) Create(_ context.Context, e *entity.ExpedienteSimple) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.NumeroExpediente == e.NumeroExpediente && ex.TipoExpediente == e.TipoExpediente {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeExpSimpleRepo) GetByID(_ context.Context, id string, f scope.Filtro) (*entity.ExpedienteSimple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || !f.Permite(e.UsuarioCreadorID) {
		return nil, nil
	}
	cp := *e
	// La lectura real viene con el creador unido desde usuarios.
	cp.Creador = &entity.Usuario{ID: e.UsuarioCreadorID, Nombre: "Laura", Apellido: "Gómez"}
	return &cp, nil
}

func (r *fakeExpSimpleRepo) List(_ context.Context, p repository.ListExpedientesSimpleParams) ([]*entity.ExpedienteSimple, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ExpedienteSimple
	for _, e := range r.items {
		if p.Tipo != nil && e.TipoExpediente != *p.Tipo {
			continue
		}
		if !p.Filtro.Permite(e.UsuarioCreadorID) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeExpSimpleRepo) ListTodos(_ context.Context) ([]*entity.ExpedienteSimple, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ExpedienteSimple
	for _, e := range r.items {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeExpSimpleRepo) MaxSecuencia(_ context.Context, tipo bool, anio string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, e := range r.items {
		if e.TipoExpediente != tipo {
			continue
		}
		sec, a, err := serie.Parsear(serie.FormatoBarra, e.NumeroExpediente)
		if err != nil || a != anio {
			continue
		}
		if sec > max {
			max = sec
		}
	}
	return max, nil
}

func (r *fakeExpSimpleRepo) Update(_ context.Context, e *entity.ExpedienteSimple) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return errors.New("registro inexistente")
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeExpSimpleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeExpSimpleRepo) SetComprobante(_ context.Context, id, ruta string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; ok {
		e.RutaComprobantePDF = ruta
	}
	return nil
}

func (r *fakeExpSimpleRepo) CountByCreador(_ context.Context, usuarioID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.items {
		if e.UsuarioCreadorID == usuarioID {
			n++
		}
	}
	return n, nil
}

type fakeExpedienteRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Expediente
}

func newFakeExpedienteRepo() *fakeExpedienteRepo {
	return &fakeExpedienteRepo{items: make(map[string]*entity.Expediente)}
}

func (r *fakeExpedienteRepo) Create(_ context.Context, e *entity.Expediente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.NumeroExpediente == e.NumeroExpediente {
			return domain.ErrDuplicate
		}
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeExpedienteRepo) GetByID(_ context.Context, id string, f scope.Filtro) (*entity.Expediente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || !f.Permite(e.AbogadoResponsableID) {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpedienteRepo) List(_ context.Context, p repository.ListExpedientesParams) ([]*entity.Expediente, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Expediente
	for _, e := range r.items {
		if !p.Filtro.Permite(e.AbogadoResponsableID) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeExpedienteRepo) CountAnio(_ context.Context, anio string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.items {
		if _, a, err := serie.Parsear(serie.FormatoAnioPadded, e.NumeroExpediente); err == nil && a == anio {
			n++
		}
	}
	return n, nil
}

func (r *fakeExpedienteRepo) Update(_ context.Context, e *entity.Expediente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return errors.New("expediente inexistente")
	}
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *fakeExpedienteRepo) CountNoArchivadosPorCliente(_ context.Context, clienteID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.items {
		if e.ClienteID == clienteID && e.Estado != entity.ExpedienteArchivado {
			n++
		}
	}
	return n, nil
}

type fakeClienteRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Cliente
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{items: make(map[string]*entity.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.DNI == c.DNI || (c.RFC != "" && ex.RFC == c.RFC) {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClienteRepo) List(_ context.Context, _ repository.ListClientesParams) ([]*entity.Cliente, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Cliente
	for _, c := range r.items {
		if !c.Activo {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeClienteRepo) Desactivar(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		c.Activo = false
	}
	return nil
}

type fakeUsuarioRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{items: make(map[string]*entity.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) List(_ context.Context, _ repository.ListUsuariosParams) ([]*entity.Usuario, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Usuario
	for _, u := range r.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return errors.New("usuario inexistente")
	}
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUsuarioRepo) Stats(_ context.Context) (repository.UsuarioStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st repository.UsuarioStats
	for _, u := range r.items {
		st.Total++
		if u.Activo {
			st.Activos++
		}
		if u.Rol == entity.RolAdmin {
			st.Admins++
		} else {
			st.Administrativos++
		}
	}
	return st, nil
}

type fakeDecretoRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Decreto
}

func newFakeDecretoRepo() *fakeDecretoRepo {
	return &fakeDecretoRepo{items: make(map[string]*entity.Decreto)}
}

func (r *fakeDecretoRepo) Create(_ context.Context, d *entity.Decreto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.NumeroDecreto == d.NumeroDecreto {
			return domain.ErrDuplicate
		}
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDecretoRepo) GetByID(_ context.Context, id string, f scope.Filtro) (*entity.Decreto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok || !f.Permite(d.UsuarioCreadorID) {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDecretoRepo) List(_ context.Context, p repository.ListDecretosParams) ([]*entity.Decreto, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Decreto
	for _, d := range r.items {
		if !p.Filtro.Permite(d.UsuarioCreadorID) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeDecretoRepo) ExistsNumero(_ context.Context, numero, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.items {
		if d.NumeroDecreto == numero && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDecretoRepo) Update(_ context.Context, d *entity.Decreto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return errors.New("decreto inexistente")
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDecretoRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeDocumentoRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Documento
}

func newFakeDocumentoRepo() *fakeDocumentoRepo {
	return &fakeDocumentoRepo{items: make(map[string]*entity.Documento)}
}

func (r *fakeDocumentoRepo) Create(_ context.Context, d *entity.Documento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *fakeDocumentoRepo) GetByID(_ context.Context, id string) (*entity.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentoRepo) ListByExpediente(_ context.Context, expedienteID string) ([]*entity.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Documento
	for _, d := range r.items {
		if d.ExpedienteID != expedienteID {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDocumentoRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakePagoRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Pago
}

func newFakePagoRepo() *fakePagoRepo {
	return &fakePagoRepo{items: make(map[string]*entity.Pago)}
}

func (r *fakePagoRepo) Create(_ context.Context, p *entity.Pago) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.items {
		if ex.NumeroRecibo == p.NumeroRecibo {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakePagoRepo) GetByID(_ context.Context, id string) (*entity.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	// La lectura real viene con el usuario receptor unido desde usuarios.
	cp.UsuarioRecibio = &entity.Usuario{ID: p.UsuarioRecibioID, Nombre: "Laura", Apellido: "Gómez"}
	return &cp, nil
}

func (r *fakePagoRepo) ListByExpediente(_ context.Context, expedienteID string) ([]*entity.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Pago
	for _, p := range r.items {
		if p.ExpedienteID != expedienteID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePagoRepo) SetComprobante(_ context.Context, id, ruta string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		p.ComprobanteGenerado = true
		p.RutaComprobante = ruta
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de generación de PDF y almacenamiento
// ──────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	fail       bool
	ultimoExp  *entity.ExpedienteSimple
	ultimoPago *entity.Pago
}

func (g *fakeGenerator) GenerarComprobanteExpediente(e *entity.ExpedienteSimple) ([]byte, error) {
	g.ultimoExp = e
	if g.fail {
		return nil, errors.New("fallo simulado del generador")
	}
	return []byte("%PDF-fake"), nil
}

func (g *fakeGenerator) GenerarReciboPago(p *entity.Pago, _ *entity.Expediente) ([]byte, error) {
	g.ultimoPago = p
	if g.fail {
		return nil, errors.New("fallo simulado del generador")
	}
	return []byte("%PDF-fake"), nil
}

type fakeFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string][]byte)}
}

func (s *fakeFileStore) Save(sub, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return s.SaveBytes(sub, filename, data)
}

func (s *fakeFileStore) SaveBytes(sub, filename string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ruta := sub + "/" + filename
	s.files[ruta] = data
	return ruta, nil
}

func (s *fakeFileStore) Exists(ruta string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[ruta]
	return ok
}

func (s *fakeFileStore) Delete(ruta string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, ruta)
	return nil
}
