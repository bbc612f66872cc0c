package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/internal/domain/serie"
)

// UserUseCase administración de usuarios, solo accesible para admin. Las
// acciones sobre la propia cuenta (baja, desactivación) se rechazan.
type UserUseCase struct {
	repo    repository.UsuarioRepository
	expRepo repository.ExpedienteSimpleRepository
	now     serie.Reloj
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UsuarioRepository, expRepo repository.ExpedienteSimpleRepository, now serie.Reloj) *UserUseCase {
	return &UserUseCase{repo: repo, expRepo: expRepo, now: now}
}

// Create alta de usuario con rol explícito.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	ve := &domain.ValidationError{}
	if in.Nombre == "" {
		ve.Add("nombre", "el nombre es obligatorio")
	}
	if in.Apellido == "" {
		ve.Add("apellido", "el apellido es obligatorio")
	}
	if in.Email == "" {
		ve.Add("email", "el email es obligatorio")
	}
	if len(in.Password) < 8 {
		ve.Add("password", "la contraseña debe tener al menos 8 caracteres")
	}
	if in.Rol != entity.RolAdmin && in.Rol != entity.RolAdministrativo {
		ve.Add("rol", "rol inválido: admin o administrativo")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		Telefono:     in.Telefono,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// GetByID devuelve cualquier usuario, activo o no.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UsuarioResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// List lista usuarios con búsqueda y filtro por rol.
func (uc *UserUseCase) List(ctx context.Context, in dto.ListUsuariosRequest) (*dto.ListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ListUsuariosParams{
		Page:   in.Page,
		Limit:  in.Limit,
		Search: in.Search,
		Rol:    in.Rol,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ListResponse{
		Items:      dto.FromUsuarios(items),
		Pagination: dto.NewPagination(in.Page, in.Limit, total),
	}, nil
}

// Update edición parcial. Desactivarse a sí mismo se rechaza: un despacho no
// se queda sin su único admin por accidente.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	ve := &domain.ValidationError{}
	if in.Nombre != nil {
		if *in.Nombre == "" {
			ve.Add("nombre", "el nombre no puede quedar vacío")
		} else {
			user.Nombre = *in.Nombre
		}
	}
	if in.Apellido != nil {
		if *in.Apellido == "" {
			ve.Add("apellido", "el apellido no puede quedar vacío")
		} else {
			user.Apellido = *in.Apellido
		}
	}
	if in.Email != nil && *in.Email != user.Email {
		if *in.Email == "" {
			ve.Add("email", "el email no puede quedar vacío")
		} else {
			existing, err := uc.repo.GetByEmail(ctx, *in.Email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = *in.Email
		}
	}
	if in.Rol != nil {
		if *in.Rol != entity.RolAdmin && *in.Rol != entity.RolAdministrativo {
			ve.Add("rol", "rol inválido: admin o administrativo")
		} else {
			user.Rol = *in.Rol
		}
	}
	if in.Telefono != nil {
		user.Telefono = *in.Telefono
	}
	if in.Activo != nil {
		if !*in.Activo && id == actorID {
			return nil, domain.ErrSelfAction
		}
		user.Activo = *in.Activo
	}
	if ve.HasErrors() {
		return nil, ve
	}

	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// Delete es la baja lógica. La propia cuenta se rechaza y un usuario con
// registros cargados se bloquea: sus expedientes lo referencian.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.ErrSelfAction
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.Activo {
		return domain.ErrConflict
	}
	cargados, err := uc.expRepo.CountByCreador(ctx, id)
	if err != nil {
		return err
	}
	if cargados > 0 {
		return domain.ErrConflict
	}
	user.Activo = false
	user.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, user)
}

// ResetPassword fija una contraseña nueva sin pedir la actual (acción admin).
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < 8 {
		ve := &domain.ValidationError{}
		ve.Add("newPassword", "la contraseña debe tener al menos 8 caracteres")
		return ve
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	return uc.repo.Update(ctx, user)
}

// Stats agregados para el panel de administración.
func (uc *UserUseCase) Stats(ctx context.Context) (*dto.UsuarioStatsResponse, error) {
	st, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UsuarioStatsResponse{
		Total:           st.Total,
		Activos:         st.Activos,
		Inactivos:       st.Total - st.Activos,
		Admins:          st.Admins,
		Administrativos: st.Administrativos,
	}, nil
}
