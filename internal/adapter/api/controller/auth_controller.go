package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/auth"
	"github.com/hugohenrick/greenchain/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	userRepository user.Repository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	logger         logger.Logger
}

// NewAuthController cria uma nova instância de AuthController. Com blacklist
// nil o logout apenas confirma a operação.
func NewAuthController(userRepository user.Repository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log logger.Logger) *AuthController {
	return &AuthController{
		userRepository: userRepository,
		jwtService:     jwtService,
		blacklist:      blacklist,
		logger:         log,
	}
}

// Register cadastra um novo usuário
// @Summary Cadastra um usuário
// @Description Cria um gestor de estoque (manager) ou intermediário (middleman)
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	now := time.Now()
	u := &user.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(request.Name),
		Email:     strings.ToLower(strings.TrimSpace(request.Email)),
		Role:      user.Role(request.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.SetPassword(request.Password); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao processar senha", err.Error()))
		return
	}

	if err := c.userRepository.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Usuário com mesmo email já existe", ""))
			return
		}
		c.logger.Error("Failed to create user", "error", err, "email", u.Email)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar usuário", err.Error()))
		return
	}

	c.logger.Info("User registered", "user_id", u.ID, "role", u.Role)
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	u, err := c.userRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao autenticar usuário", err.Error()))
		return
	}

	if !u.CheckPassword(request.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "Email ou senha incorretos"))
		return
	}

	token, expiresAt, err := c.jwtService.GenerateToken(u)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	// Falha aqui não impede o login
	if err := c.userRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		c.logger.Warn("Failed to update last login", "error", err, "user_id", u.ID)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	})
}

// RefreshToken renova o token JWT atual
// @Summary Renova um token JWT
// @Description Emite um novo token para o usuário autenticado
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	token := ctx.GetString(auth.ContextToken)

	newToken, expiresAt, err := c.jwtService.RefreshToken(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken: newToken,
		ExpiresAt:   expiresAt,
	})
}

// Logout revoga o token atual
// @Summary Encerra a sessão
// @Description Adiciona o token atual à blacklist até a sua expiração
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	if c.blacklist != nil {
		ttl := c.jwtService.RemainingTTL(claims)
		if err := c.blacklist.Add(ctx, ctx.GetString(auth.ContextToken), ttl); err != nil {
			c.logger.Error("Failed to revoke token", "error", err, "user_id", claims.UserID)
			ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "Erro ao encerrar sessão", err.Error()))
			return
		}
	}

	c.logger.Info("User logged out", "user_id", claims.UserID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Sessão encerrada", nil))
}
