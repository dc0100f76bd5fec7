package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/greenchain/internal/adapter/api/dto"
	"github.com/hugohenrick/greenchain/internal/adapter/repository"
	"github.com/hugohenrick/greenchain/internal/domain/user"
	"github.com/hugohenrick/greenchain/pkg/auth"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	userRepository user.Repository
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepository user.Repository) *UserController {
	return &UserController{
		userRepository: userRepository,
	}
}

// Me retorna informações do usuário atual
// @Summary Retorna informações do usuário atual
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	userID, _, _, _ := auth.GetCurrentUser(ctx)
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}
	c.respondUser(ctx, userID)
}

// GetByID busca um usuário pelo ID
// @Summary Busca um usuário pelo ID
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}
	c.respondUser(ctx, id)
}

func (c *UserController) respondUser(ctx *gin.Context, id string) {
	u, err := c.userRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Usuário não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar usuário", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
