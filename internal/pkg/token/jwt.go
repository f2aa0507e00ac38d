package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(userID string, staffID *int64, roles []string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims carrega o usuário, o funcionário vinculado (se houver) e os papéis.
type CustomClaims struct {
	UserID  string   `json:"user_id"`
	StaffID *int64   `json:"staff_id,omitempty"`
	Roles   []string `json:"roles"`
	jwt.RegisteredClaims
}

// Service implementa a interface TokenService.
// A emissão de tokens pertence ao serviço de autenticação da clínica; GenerateToken
// existe para ferramentas internas e testes.
type Service struct {
	secretKey []byte
	expiry    time.Duration
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// GenerateToken cria um JWT HS256 assinado.
func (s *Service) GenerateToken(userID string, staffID *int64, roles []string) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID:  userID,
		StaffID: staffID,
		Roles:   roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "ClinicStock-API",
			Subject:   userID,
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken valida o token string e retorna as claims se for válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token não é válido")
	}
	if claims.UserID == "" {
		return nil, errors.New("token sem user_id")
	}
	return claims, nil
}
