package leave

import (
	"go-leaveco/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Submit)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)

		leaves.GET("/review", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ListPendingReview)
		leaves.PUT("/:id/manager-approve", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ManagerApprove)
		leaves.PUT("/:id/manager-reject", middleware.RBACAuthorize(rbacService, "leave", "review"), handler.ManagerReject)

		leaves.GET("/finalize", middleware.RBACAuthorize(rbacService, "leave", "finalize"), handler.ListPendingFinalize)
		leaves.PUT("/:id/hr-approve", middleware.RBACAuthorize(rbacService, "leave", "finalize"), handler.HRApprove)
		leaves.PUT("/:id/hr-reject", middleware.RBACAuthorize(rbacService, "leave", "finalize"), handler.HRReject)
	}
}
