package scheduler

import (
	"go-leaveco/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", middleware.RBACAuthorize(rbacService, "job", "trigger"), handler.ListExecutions)
		jobs.POST("/rollover", middleware.RBACAuthorize(rbacService, "job", "trigger"), handler.TriggerRollover)
	}
}
