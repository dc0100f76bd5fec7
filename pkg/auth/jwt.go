package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/greenchain/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
	ErrRevokedToken  = errors.New("token revogado")
)

const issuer = "greenchain-api"

// JWTClaims representa as claims personalizadas do token JWT
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService. Expiração zero usa 24 horas.
func NewJWTService(secretKey string, expiration time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// GenerateToken gera um token JWT para o usuário e retorna também o instante de expiração
func (s *JWTService) GenerateToken(u *user.User) (string, time.Time, error) {
	now := s.now()
	expirationTime := now.Add(s.expiration)

	claims := JWTClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   u.ID,
		},
	}

	tokenString, err := s.sign(&claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// RefreshToken emite um novo token com as mesmas claims. Tokens expirados
// não podem ser renovados.
func (s *JWTService) RefreshToken(tokenString string) (string, time.Time, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", time.Time{}, err
	}

	now := s.now()
	expirationTime := now.Add(s.expiration)
	claims.ExpiresAt = jwt.NewNumericDate(expirationTime)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)

	newTokenString, err := s.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return newTokenString, expirationTime, nil
}

// RemainingTTL retorna quanto tempo falta para as claims expirarem
func (s *JWTService) RemainingTTL(claims *JWTClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl < 0 {
		return 0
	}
	return ttl
}

func (s *JWTService) sign(claims *JWTClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}
