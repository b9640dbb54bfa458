package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/imrishuroy/storefront-admin/internal/cache"
	"github.com/imrishuroy/storefront-admin/internal/store"
)

// HandlerConfig groups dependencies for the dashboard API handlers.
type HandlerConfig struct {
	Client store.API
	Cache  cache.DocumentCache
}

// RequestID ensures every request carries an X-Request-Id, generating one
// when the caller did not send one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// storeError writes the JSON body for a failed store call. The data access
// layer does not retry; the handler reports the rejection and stops.
func storeError(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{
		"error":  "store_request_failed",
		"detail": err.Error(),
	})
}
