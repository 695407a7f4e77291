package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/project-task-api/internal/constants"
)

// requestIDKey is the key used to store the request ID in a context.Context
type requestIDKey struct{}

// RequestID ensures every request has a request ID. An incoming
// X-Request-Id header is reused, otherwise a new id is generated. The id is
// stored in the gin context, the request context and the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(constants.HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(constants.ContextKeyRequestID, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(constants.HeaderRequestID, rid)

		c.Next()
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
