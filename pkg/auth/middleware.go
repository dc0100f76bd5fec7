package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
)

// Chaves usadas no contexto do gin
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserName  = "user_name"
	ContextUserRole  = "user_role"
	ContextToken     = "token"
	ContextClaims    = "claims"
)

// JWTAuthMiddleware cria um middleware para autenticação JWT. Com blacklist
// nil os tokens revogados não são verificados.
func JWTAuthMiddleware(jwtService *JWTService, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"O cabeçalho Authorization não foi fornecido",
			))
			return
		}

		// Verificar o formato "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Formato de token inválido",
				"Use o formato 'Bearer <token>'",
			))
			return
		}
		token := tokenParts[1]

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			message := "Token inválido"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.Contains(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
					http.StatusServiceUnavailable,
					"Erro ao verificar token",
					err.Error(),
				))
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
					http.StatusUnauthorized,
					"Token revogado",
					ErrRevokedToken.Error(),
				))
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextToken, token)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuthMiddleware cria um middleware para verificação de papel do usuário
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextUserRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"",
			))
			return
		}

		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			http.StatusForbidden,
			"Acesso negado",
			"Você não tem permissão para acessar este recurso",
		))
	}
}

// GetCurrentUser obtém as informações do usuário atual do contexto
func GetCurrentUser(c *gin.Context) (userID, email, name, role string) {
	return c.GetString(ContextUserID),
		c.GetString(ContextUserEmail),
		c.GetString(ContextUserName),
		c.GetString(ContextUserRole)
}

// GetClaims obtém as claims do token atual
func GetClaims(c *gin.Context) (*JWTClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*JWTClaims)
	return claims, ok
}
