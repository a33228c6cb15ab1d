package fiberscalar

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webasoo/docsecrets/secrets"
)

const spec = `{
  "openapi": "3.1.0",
  "components": {
    "securitySchemes": {
      "oauth": {
        "type": "oauth2",
        "flows": {
          "password": {"x-scalar-secret-token": "pw-tok"},
          "implicit": {}
        }
      },
      "key": {"type": "apiKey", "x-scalar-secret-token": "fiber-tok"}
    }
  }
}`

func body(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestRegisterWithSpec(t *testing.T) {
	app := fiber.New()
	RegisterWithSpec(app, []byte(spec))

	code, out := body(t, app, "/scalar/secrets.json")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"secrets":["pw-tok","fiber-tok"]}`, out)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/scalar", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "scalar/", resp.Header.Get("Location"))

	code, _ = body(t, app, "/scalar/")
	assert.Equal(t, http.StatusOK, code)
}

func TestSecretsHandler(t *testing.T) {
	doc, err := secrets.Parse([]byte(spec))
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/secrets", SecretsHandler(doc))

	code, out := body(t, app, "/secrets")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"secrets":["pw-tok","fiber-tok"]}`, out)

	_, out = body(t, app, "/secrets?scheme=key")
	assert.JSONEq(t, `{"secrets":["fiber-tok"]}`, out)
}

func TestFindSpec(t *testing.T) {
	dir := t.TempDir()
	_, err := findSpec(dir)
	require.Error(t, err)

	yamlPath := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("openapi: 3.1.0\n"), 0o644))
	got, err := findSpec(dir)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, got)

	jsonPath := filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{}`), 0o644))
	got, err = findSpec(dir)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, got)
}

func TestRegisterFileMissing(t *testing.T) {
	err := RegisterFile(fiber.New(), filepath.Join(t.TempDir(), "openapi.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fiberscalar: read spec")
}
