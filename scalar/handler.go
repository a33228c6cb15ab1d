package scalar

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/invopop/yaml"

	"github.com/webasoo/docsecrets/secrets"
)

const (
	specFile    = "openapi.json"
	secretsFile = "secrets.json"
	indexFile   = "index.html"
)

var assetFS = initAssetFS()

func initAssetFS() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic("scalar: failed to load embedded assets: " + err.Error())
	}
	return sub
}

// secretsResponse is the body served at secrets.json.
type secretsResponse struct {
	Secrets []string `json:"secrets"`
}

// Handler returns an http.Handler that serves the Scalar API reference UI, the document as
// openapi.json (YAML input is converted) and the document's example credentials as
// secrets.json.
func Handler(spec []byte) http.Handler {
	specJSON := toJSON(spec)
	secretsBody, secretsErr := buildSecrets(spec)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch target := resolveTarget(r.URL.Path); target {
		case "":
			// The page loads its resources by relative URL, so it must live under a directory.
			if p := requestPath(r); !strings.HasSuffix(p, "/") {
				redirectToDir(w, r, p)
				return
			}
			if !serveAsset(w, indexFile) {
				http.Error(w, "scalar: index not available", http.StatusInternalServerError)
			}
		case indexFile:
			if !serveAsset(w, indexFile) {
				http.Error(w, "scalar: index not available", http.StatusInternalServerError)
			}
		case specFile:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(specJSON)
		case secretsFile:
			if secretsErr != nil {
				http.Error(w, secretsErr.Error(), http.StatusUnprocessableEntity)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			_, _ = w.Write(secretsBody)
		default:
			if !serveAsset(w, target) {
				http.NotFound(w, r)
			}
		}
	})
}

// HandlerFromFile loads the OpenAPI document from disk and returns a Scalar handler.
func HandlerFromFile(path string) (http.Handler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scalar: read spec %q: %w", path, err)
	}
	return Handler(data), nil
}

// Register mounts the Scalar handler under /scalar and /scalar/.
func Register(spec []byte) {
	handler := Handler(spec)
	http.Handle("/scalar", handler)
	http.Handle("/scalar/", handler)
}

// RegisterFile loads an OpenAPI document from disk and mounts the standard Scalar routes.
func RegisterFile(path string) error {
	handler, err := HandlerFromFile(path)
	if err != nil {
		return err
	}
	http.Handle("/scalar", handler)
	http.Handle("/scalar/", handler)
	return nil
}

func toJSON(spec []byte) []byte {
	if json.Valid(spec) {
		return append([]byte(nil), spec...)
	}
	converted, err := yaml.YAMLToJSON(spec)
	if err != nil {
		return append([]byte(nil), spec...)
	}
	return converted
}

func buildSecrets(spec []byte) ([]byte, error) {
	doc, err := secrets.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("scalar: %w", err)
	}
	return json.Marshal(secretsResponse{Secrets: doc.Secrets()})
}

func resolveTarget(raw string) string {
	cleaned := raw
	if idx := strings.Index(cleaned, "?"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if cleaned == "" {
		return ""
	}
	cleaned = path.Clean(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return ""
	}

	segments := strings.Split(cleaned, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "scalar" {
			return strings.Join(segments[i+1:], "/")
		}
	}
	return cleaned
}

// requestPath returns the path the client asked for, before any prefix stripping.
func requestPath(r *http.Request) string {
	if r.RequestURI != "" {
		if u, err := url.ParseRequestURI(r.RequestURI); err == nil {
			return u.Path
		}
	}
	return r.URL.Path
}

// redirectToDir sends the client to p + "/" using a reference relative to p, which stays
// correct when a router stripped a mount prefix from r.URL.Path.
func redirectToDir(w http.ResponseWriter, r *http.Request, p string) {
	target := "/"
	if base := path.Base(p); base != "." && base != "/" {
		target = base + "/"
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusMovedPermanently)
}

func serveAsset(w http.ResponseWriter, name string) bool {
	data, err := fs.ReadFile(assetFS, name)
	if err != nil {
		return false
	}

	switch path.Ext(name) {
	case ".html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
	}

	_, _ = w.Write(data)
	return true
}
