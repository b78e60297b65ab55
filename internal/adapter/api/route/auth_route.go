package route

import (
	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/controller"
)

// SetupAuthRoutes configures the authentication routes
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}
