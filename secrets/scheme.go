package secrets

// Security scheme type discriminants.
const (
	TypeAPIKey = "apiKey"
	TypeHTTP   = "http"
	TypeOAuth2 = "oauth2"
)

// Vendor extensions holding example credentials.
const (
	ExtSecretToken    = "x-scalar-secret-token"
	ExtSecretUsername = "x-scalar-secret-username"
	ExtSecretPassword = "x-scalar-secret-password"
)

// SecurityScheme is one of *APIKeyScheme, *HTTPScheme, *OAuth2Scheme or *UnknownScheme.
// Optional credential fields are nil when the document does not set them; a non-nil
// pointer to "" is a present, empty value.
type SecurityScheme interface {
	Type() string
	securityScheme()
}

// APIKeyScheme is an apiKey security scheme.
type APIKeyScheme struct {
	Name        string
	In          string
	SecretToken *string
}

// HTTPScheme is an http security scheme (basic, bearer, ...).
type HTTPScheme struct {
	Scheme         string
	SecretToken    *string
	SecretUsername *string
	SecretPassword *string
}

// OAuth2Scheme is an oauth2 security scheme. Flows keep the order they were declared in.
type OAuth2Scheme struct {
	Flows []OAuthFlow
}

// OAuthFlow is a single named grant configuration of an OAuth2Scheme.
type OAuthFlow struct {
	Name        string
	SecretToken *string
}

// UnknownScheme stands in for schemes without a supported type, including openIdConnect,
// a missing type and references that could not be resolved.
type UnknownScheme struct {
	Kind string
	Ref  string
}

func (*APIKeyScheme) Type() string { return TypeAPIKey }
func (*HTTPScheme) Type() string   { return TypeHTTP }
func (*OAuth2Scheme) Type() string { return TypeOAuth2 }

func (s *UnknownScheme) Type() string {
	if s == nil {
		return ""
	}
	return s.Kind
}

func (*APIKeyScheme) securityScheme()  {}
func (*HTTPScheme) securityScheme()    {}
func (*OAuth2Scheme) securityScheme()  {}
func (*UnknownScheme) securityScheme() {}

// Flow returns the named flow.
func (s *OAuth2Scheme) Flow(name string) (OAuthFlow, bool) {
	if s == nil {
		return OAuthFlow{}, false
	}
	for _, flow := range s.Flows {
		if flow.Name == name {
			return flow, true
		}
	}
	return OAuthFlow{}, false
}

// String returns a pointer to v, for filling optional fields.
func String(v string) *string {
	return &v
}
