package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orbita/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// Attachments travel as base64 data URLs, so the limit must leave room for
// the encoding overhead on top of the largest accepted file.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRequestTooLarge,
					"Request body exceeds maximum allowed size", GetRequestID(c)))
			return
		}

		// Streaming bodies without Content-Length are cut at the limit
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
