package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI3 adapts the security schemes of a kin-openapi document.
//
// kin-openapi keeps schemes in a map and flows in fixed fields, so declaration order is
// lost: schemes are ordered by name, flows as implicit, password, clientCredentials,
// authorizationCode.
func FromOpenAPI3(doc *openapi3.T) *Document {
	out := newDocument()
	if doc == nil || doc.Components == nil {
		return out
	}
	names := make([]string, 0, len(doc.Components.SecuritySchemes))
	for name := range doc.Components.SecuritySchemes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := doc.Components.SecuritySchemes[name]
		switch {
		case ref == nil:
			out.add(name, &UnknownScheme{})
		case ref.Value == nil:
			out.add(name, &UnknownScheme{Ref: ref.Ref})
		default:
			out.add(name, convertSecurityScheme(ref.Value))
		}
	}
	return out
}

// LoadOpenAPI3 loads data with the kin-openapi loader, optionally validates it, and adapts
// its security schemes.
func LoadOpenAPI3(ctx context.Context, data []byte, validate bool) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("secrets: load document: %w", err)
	}
	if validate {
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("secrets: validate document: %w", err)
		}
	}
	return FromOpenAPI3(doc), nil
}

func convertSecurityScheme(s *openapi3.SecurityScheme) SecurityScheme {
	switch s.Type {
	case TypeAPIKey:
		return &APIKeyScheme{
			Name:        s.Name,
			In:          s.In,
			SecretToken: extensionValue(s.Extensions, ExtSecretToken),
		}
	case TypeHTTP:
		return &HTTPScheme{
			Scheme:         s.Scheme,
			SecretToken:    extensionValue(s.Extensions, ExtSecretToken),
			SecretUsername: extensionValue(s.Extensions, ExtSecretUsername),
			SecretPassword: extensionValue(s.Extensions, ExtSecretPassword),
		}
	case TypeOAuth2:
		scheme := &OAuth2Scheme{}
		if s.Flows == nil {
			return scheme
		}
		flows := []struct {
			name string
			flow *openapi3.OAuthFlow
		}{
			{"implicit", s.Flows.Implicit},
			{"password", s.Flows.Password},
			{"clientCredentials", s.Flows.ClientCredentials},
			{"authorizationCode", s.Flows.AuthorizationCode},
		}
		for _, f := range flows {
			if f.flow == nil {
				continue
			}
			scheme.Flows = append(scheme.Flows, OAuthFlow{
				Name:        f.name,
				SecretToken: extensionValue(f.flow.Extensions, ExtSecretToken),
			})
		}
		return scheme
	default:
		return &UnknownScheme{Kind: s.Type}
	}
}

// extensionValue reads a scalar extension. Depending on how the document was built the value
// is either decoded or still raw JSON.
func extensionValue(ext map[string]interface{}, key string) *string {
	raw, ok := ext[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case string:
		return &v
	case json.RawMessage:
		var decoded interface{}
		if err := json.Unmarshal(v, &decoded); err != nil {
			return nil
		}
		return extensionValue(map[string]interface{}{key: decoded}, key)
	case float64:
		s := formatNumber(v)
		return &s
	case bool, int, int64:
		s := fmt.Sprint(v)
		return &s
	default:
		return nil
	}
}
