package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos por la aplicación.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade Rol para que el middleware de autorización pueda decidir sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Rol       string `json:"rol"` // "admin" | "administrativo"
	TokenType string `json:"token_type"`
}

// Generate genera un token de acceso firmado con userID, email y rol.
func Generate(secret, userID, email, rol, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, email, rol, issuer, TypeAccess, time.Duration(expMinutes)*time.Minute)
}

// GenerateRefresh genera un token de refresco de vida más larga (horas).
func GenerateRefresh(secret, userID, email, rol, issuer string, expHours int) (string, error) {
	return sign(secret, userID, email, rol, issuer, TypeRefresh, time.Duration(expHours)*time.Hour)
}

func sign(secret, userID, email, rol, issuer, tokenType string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Email:     email,
		Rol:       rol,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ParseRefresh valida que el token sea un token de refresco vigente.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, fmt.Errorf("no es un token de refresco")
	}
	return claims, nil
}
