package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"support-orchestrator/pkg/log"
)

// HeaderRequestID carries the request id to the client and into the logs.
const HeaderRequestID = "X-Request-ID"

type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}

// RequestID attaches a request id to every request, keeping an inbound id
// when the caller already set one.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
