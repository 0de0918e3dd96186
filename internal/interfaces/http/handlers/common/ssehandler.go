// Package common provides shared HTTP handler utilities.
package common

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/logger"
)

const (
	// SSEKeepaliveInterval is the interval for sending keepalive comments.
	SSEKeepaliveInterval = 30 * time.Second

	SSEContentType = "text/event-stream"

	// MaxFilterIDs caps the number of IDs accepted in one filter parameter.
	MaxFilterIDs = 100

	// MaxFilterIDLength is the longest ID kept from a filter parameter.
	MaxFilterIDLength = 32
)

// SSEEvent is one frame written to a stream.
type SSEEvent struct {
	Name string
	Data any
}

// SSEStream writes server-sent events to a gin response.
type SSEStream struct {
	keepalive time.Duration
	logger    logger.Interface
}

func NewSSEStream(keepalive time.Duration, log logger.Interface) *SSEStream {
	if keepalive <= 0 {
		keepalive = SSEKeepaliveInterval
	}
	return &SSEStream{keepalive: keepalive, logger: log}
}

// Setup sets the SSE response headers.
// CORS headers are handled by the global middleware.
func (s *SSEStream) Setup(c *gin.Context) {
	c.Header("Content-Type", SSEContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering
}

// SendInitialConnection writes the opening comment. It returns false when the
// client is already gone.
func (s *SSEStream) SendInitialConnection(c *gin.Context) bool {
	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		return false
	}
	c.Writer.Flush()
	return true
}

// Run blocks, forwarding events and keepalives until the request context ends
// or events is closed.
func (s *SSEStream) Run(c *gin.Context, events <-chan SSEEvent, logPrefix string) {
	ticker := time.NewTicker(s.keepalive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			s.logger.Infow(logPrefix+" connection closed by client")
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(ev.Name, ev.Data)
			c.Writer.Flush()

		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				s.logger.Warnw(logPrefix+" keepalive error", "error", err)
				return
			}
			c.Writer.Flush()
		}
	}
}

// ParseFilterIDs splits a comma separated query parameter. It returns nil
// when the parameter is absent.
func (s *SSEStream) ParseFilterIDs(c *gin.Context, paramName string) []string {
	raw := c.Query(paramName)
	if raw == "" {
		return nil
	}

	var filters []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || len(p) > MaxFilterIDLength {
			continue
		}
		filters = append(filters, p)
		if len(filters) >= MaxFilterIDs {
			s.logger.Warnw("filter IDs truncated to max limit",
				"param", paramName,
				"max", MaxFilterIDs,
			)
			break
		}
	}
	return filters
}
