package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.POST("/claims", func(c *gin.Context) {
		c.Set("employee_id", "emp-1")
		c.Next()
	}, Idempotency(rdb), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"status": "success"})
	})
	return r, mock
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/claims:emp-1:key-123"
	const lockKey = cacheKey + ":lock"

	t.Run("no header passes through", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first request takes the lock", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cached response is replayed", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t)
		mock.ExpectGet(cacheKey).SetVal(`{"total_value":2.5}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "total_value")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in-flight duplicate is rejected", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/claims", nil)
		req.Header.Set("Idempotency-Key", "key-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
