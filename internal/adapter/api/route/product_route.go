package route

import (
	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/controller"
	"github.com/mostafakamar/hafla-store/pkg/auth"
)

// SetupProductRoutes configures the catalog routes. Reads are public so the
// storefront can browse without an account; writes require an admin.
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController) {
	productRouter := router.Group("/products")
	{
		productRouter.GET("", productController.List)
		productRouter.GET("/:id", productController.Get)

		adminRouter := productRouter.Group("")
		adminRouter.Use(auth.JWTAuthMiddleware())
		adminRouter.Use(auth.RoleAuthMiddleware("admin"))
		{
			adminRouter.POST("", productController.Create)
			adminRouter.PUT("/:id", productController.Update)
			adminRouter.DELETE("/:id", productController.Delete)
		}
	}
}
