package dto

// RegisterRequest entrada para el registro público. El rol siempre queda en
// administrativo; los admin se crean desde /users.
type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido string `json:"apellido" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Telefono string `json:"telefono" validate:"omitempty,max=30"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para canjear el refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPair salida con ambos tokens.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse salida de login y refresh.
type LoginResponse struct {
	TokenPair
	User UsuarioResponse `json:"user"`
}

// UpdateProfileRequest campos editables del propio perfil.
type UpdateProfileRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellido *string `json:"apellido" validate:"omitempty,min=1,max=100"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
}

// ChangePasswordRequest cambio de contraseña verificando la actual.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
