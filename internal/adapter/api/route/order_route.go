package route

import (
	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/controller"
	"github.com/mostafakamar/hafla-store/pkg/auth"
)

// SetupOrderRoutes configures the checkout routes
func SetupOrderRoutes(router *gin.RouterGroup, orderController *controller.OrderController) {
	orderRouter := router.Group("/orders")
	{
		orderRouter.Use(auth.JWTAuthMiddleware())
		{
			orderRouter.POST("", orderController.Create)
			orderRouter.GET("", orderController.List)
			orderRouter.GET("/:id", orderController.Get)
		}
	}
}
