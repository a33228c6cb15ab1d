package ginscalar

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/webasoo/docsecrets/scalar"
	"github.com/webasoo/docsecrets/secrets"
)

// Handler adapts the Scalar UI handler to Gin.
func Handler(spec []byte) gin.HandlerFunc {
	return gin.WrapH(scalar.Handler(spec))
}

// SecretsHandler serves the document's example credentials as {"secrets": [...]}. The
// optional ?scheme= query parameters restrict the list to the named schemes, in the order
// given.
func SecretsHandler(doc *secrets.Document) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := doc.Secrets()
		if names := c.QueryArray("scheme"); len(names) > 0 {
			list = secrets.Extract(doc.Select(names...))
		}
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{"secrets": list})
	}
}

// Register attaches GET handlers for /scalar and /scalar/*any.
func Register(router gin.IRoutes, spec []byte) {
	handler := Handler(spec)
	router.GET("/scalar", handler)
	router.GET("/scalar/*any", handler)
}

// RegisterFile loads an OpenAPI document from disk and mounts the Scalar UI routes for Gin routers.
func RegisterFile(router gin.IRoutes, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ginscalar: read spec %q: %w", path, err)
	}
	Register(router, data)
	return nil
}
