// Package http holds the pieces the router is assembled from: the App built by
// the composition root and the Module contract each bounded context fulfils.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module is a bounded context that mounts its own endpoints.
type Module interface {
	// Name identifies the module in logs.
	Name() string
	// RegisterRoutes mounts the module's endpoints on the groups in ctx.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups a module may mount on.
type RouterContext struct {
	Engine *gin.Engine
	// V1 is /api/v1 without a session. Catalog reads live here.
	V1 *gin.RouterGroup
	// Session is /api/v1 with the shopper session cookie resolved on every request.
	Session *gin.RouterGroup
}
