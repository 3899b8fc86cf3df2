package ledger

import (
	"go-leaveco/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/me", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetMine)
		balances.GET("/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "edit"), handler.GetByEmployee)
		balances.PUT("/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "edit"), handler.Overwrite)
	}
}
