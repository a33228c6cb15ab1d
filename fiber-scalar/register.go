package fiberscalar

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/webasoo/docsecrets/scalar"
	"github.com/webasoo/docsecrets/secrets"
)

// specNames are tried in order when looking for the document at the module root.
var specNames = []string{"openapi.json", "openapi.yaml", "openapi.yml"}

// Handler returns a Fiber handler that mounts the Scalar UI under the request path.
func Handler(spec []byte) fiber.Handler {
	return adaptor.HTTPHandler(scalar.Handler(spec))
}

// SecretsHandler serves the document's example credentials as {"secrets": [...]}.
// Repeated ?scheme= parameters restrict the list to those schemes.
func SecretsHandler(doc *secrets.Document) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list := doc.Secrets()
		var names []string
		c.Context().QueryArgs().VisitAll(func(key, value []byte) {
			if string(key) == "scheme" {
				names = append(names, string(value))
			}
		})
		if len(names) > 0 {
			list = secrets.Extract(doc.Select(names...))
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(fiber.Map{"secrets": list})
	}
}

// RegisterWithSpec attaches GET handlers for /scalar and /scalar/* to the provided app using the given document.
func RegisterWithSpec(app *fiber.App, spec []byte) {
	wrapped := Handler(spec)
	app.Get("/scalar", wrapped)
	app.Get("/scalar/*", wrapped)
}

// Register loads the OpenAPI document from the module root and mounts the Scalar UI routes.
func Register(app *fiber.App) error {
	path, err := defaultSpecPath()
	if err != nil {
		return err
	}
	return RegisterFile(app, path)
}

// RegisterFile loads an OpenAPI document from disk and mounts the Scalar UI routes.
func RegisterFile(app *fiber.App, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fiberscalar: read spec %q: %w", path, err)
	}
	RegisterWithSpec(app, data)
	return nil
}

func defaultSpecPath() (string, error) {
	root, err := findModuleRoot(".")
	if err != nil {
		if root, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("fiberscalar: resolve workspace root: %w", err)
		}
	}
	return findSpec(root)
}

func findSpec(root string) (string, error) {
	for _, name := range specNames {
		candidate := filepath.Join(root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("fiberscalar: stat %q: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("fiberscalar: no OpenAPI document in %s", root)
}

func findModuleRoot(start string) (string, error) {
	abspath, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	dir := abspath
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("fiberscalar: go.mod not found above %s", start)
}
