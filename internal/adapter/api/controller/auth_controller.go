package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/dto"
	"github.com/mostafakamar/hafla-store/pkg/domain"
	"github.com/mostafakamar/hafla-store/pkg/jwt"
	"github.com/mostafakamar/hafla-store/pkg/logger"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

const tokenLifetime = 24 * time.Hour

// AuthController handles registration and authentication requests
type AuthController struct {
	users  repository.UserRepository
	logger logger.Logger
}

// NewAuthController creates a new AuthController instance
func NewAuthController(users repository.UserRepository, log logger.Logger) *AuthController {
	return &AuthController{
		users:  users,
		logger: log,
	}
}

// Register creates a customer account
// @Summary Register a new account
// @Description Creates a customer account and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to hash the password", err.Error()))
		return
	}

	now := time.Now()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      request.Name,
		Phone:     request.Phone,
		Email:     request.Email,
		Password:  string(hash),
		Role:      "customer",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.users.Create(ctx.Request.Context(), u); err != nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Failed to create the account", err.Error()))
		return
	}

	token, err := jwt.GenerateToken(u.ID, u.Name, u.Role, tokenLifetime)
	if err != nil {
		c.logger.Error("failed to issue token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to issue the token", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Phone: u.Phone,
			Email: u.Email,
			Role:  u.Role,
		},
	})
}

// Login authenticates an account by phone and password
// @Summary Authenticate
// @Description Validates the credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
		return
	}

	u, err := c.users.FindByPhone(ctx.Request.Context(), request.Phone)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials", ""))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(request.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to verify the password", err.Error()))
		return
	}

	token, err := jwt.GenerateToken(u.ID, u.Name, u.Role, tokenLifetime)
	if err != nil {
		c.logger.Error("failed to issue token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Failed to issue the token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Phone: u.Phone,
			Email: u.Email,
			Role:  u.Role,
		},
	})
}

// RefreshToken issues a fresh token from a valid (or just expired) one
// @Summary Refresh the access token
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid token format", "Use the format 'Bearer <token>'"))
		return
	}

	token, err := jwt.RefreshToken(authHeader[7:])
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Failed to refresh the token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Token refreshed", gin.H{"token": token}))
}
