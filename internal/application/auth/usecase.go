package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/despacho/expedientes-api/internal/application/dto"
	"github.com/despacho/expedientes-api/internal/domain"
	"github.com/despacho/expedientes-api/internal/domain/entity"
	"github.com/despacho/expedientes-api/internal/domain/repository"
	"github.com/despacho/expedientes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol administrativo. El rol no es elegible desde
// el registro público; los admin se crean desde el panel de usuarios.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
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
	if ve.HasErrors() {
		return nil, ve
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
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
	now := time.Now()
	user := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          entity.RolAdministrativo,
		Telefono:     in.Telefono,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// Login verifica credenciales y emite el par de tokens. El mensaje es el mismo
// para email desconocido y contraseña incorrecta; la cuenta inactiva sí se
// distingue para que el usuario sepa contactar a un admin.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrInactiveUser
	}

	pair, err := uc.tokenPair(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.UltimoAcceso = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{TokenPair: *pair, User: dto.FromUsuario(user)}, nil
}

// Refresh canjea un refresh token válido por un par nuevo. Se re-lee el
// usuario: un token emitido antes de una baja no debe seguir renovándose.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrInactiveUser
	}
	pair, err := uc.tokenPair(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{TokenPair: *pair, User: dto.FromUsuario(user)}, nil
}

// Profile devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// UpdateProfile edición parcial del propio perfil. Email y rol no se tocan aquí.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UsuarioResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Nombre != nil {
		user.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		user.Apellido = *in.Apellido
	}
	if in.Telefono != nil {
		user.Telefono = *in.Telefono
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUsuario(user)
	return &resp, nil
}

// ChangePassword verifica la contraseña actual antes de fijar la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < 8 {
		ve := &domain.ValidationError{}
		ve.Add("newPassword", "la contraseña debe tener al menos 8 caracteres")
		return ve
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) tokenPair(user *entity.Usuario) (*dto.TokenPair, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, user.Email, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
