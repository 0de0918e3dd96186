package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/constants"
)

// GetPrincipal returns the actor the auth middleware stored on the context,
// or nil for anonymous requests.
func GetPrincipal(c *gin.Context) *authorization.Principal {
	v, ok := c.Get(constants.ContextKeyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*authorization.Principal)
	return p
}

// SetPrincipal stores the authenticated actor on the context.
func SetPrincipal(c *gin.Context, p *authorization.Principal) {
	c.Set(constants.ContextKeyPrincipal, p)
}
