package changeoff

import (
	"go-leaveco/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	claims := r.Group("/claims")
	claims.Use(middleware.AuthMiddleware())
	{
		claims.POST("", middleware.RBACAuthorize(rbacService, "claim", "create"), middleware.Idempotency(rdb), handler.Submit)
		claims.GET("/me", middleware.RBACAuthorize(rbacService, "claim", "read"), handler.ListMine)

		claims.GET("/review", middleware.RBACAuthorize(rbacService, "claim", "review"), handler.ListPendingReview)
		claims.PUT("/:id/manager-approve", middleware.RBACAuthorize(rbacService, "claim", "review"), handler.ManagerApprove)
		claims.PUT("/:id/manager-reject", middleware.RBACAuthorize(rbacService, "claim", "review"), handler.ManagerReject)

		claims.GET("/finalize", middleware.RBACAuthorize(rbacService, "claim", "finalize"), handler.ListPendingFinalize)
		claims.PUT("/:id/hr-approve", middleware.RBACAuthorize(rbacService, "claim", "finalize"), handler.HRApprove)
		claims.PUT("/:id/hr-reject", middleware.RBACAuthorize(rbacService, "claim", "finalize"), handler.HRReject)
	}
}
