package middleware

import (
	autherrors "go-leaveco/internal/auth/errors"
	"go-leaveco/internal/shared/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RBACService adalah interface lokal.
// Apapun package yang punya method Enforce(role, resource, action) bisa masuk ke sini.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c,
				autherrors.ErrForbidden.HTTPStatus,
				autherrors.ErrForbidden.Code,
				autherrors.ErrForbidden.Message,
				resource+":"+action,
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
