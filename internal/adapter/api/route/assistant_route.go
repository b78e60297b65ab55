package route

import (
	"github.com/gin-gonic/gin"

	"github.com/mostafakamar/hafla-store/internal/adapter/api/controller"
	"github.com/mostafakamar/hafla-store/pkg/auth"
)

// SetupAssistantRoutes configures the back-office assistant routes. The
// assistant is reachable by admins and staff; what each role may confirm is
// decided by the conversation lifecycle, not here.
func SetupAssistantRoutes(router *gin.RouterGroup, assistantController *controller.AssistantController) {
	assistantRouter := router.Group("/assistant")
	{
		assistantRouter.Use(auth.JWTAuthMiddleware())
		assistantRouter.Use(auth.RoleAuthMiddleware("admin", "staff"))
		{
			assistantRouter.POST("/messages", assistantController.SendMessage)
			assistantRouter.GET("/messages", assistantController.History)
			assistantRouter.DELETE("/messages", assistantController.ClearHistory)
			assistantRouter.POST("/messages/:id/confirm", assistantController.ConfirmAction)
			assistantRouter.POST("/messages/:id/cancel", assistantController.CancelAction)
		}
	}
}
