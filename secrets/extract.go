package secrets

import "encoding/base64"

// Extract returns the example credentials found in schemes, in scheme order.
//
// apiKey schemes contribute their token. http schemes contribute token, username and
// password, followed by the Basic credential when both username and password are set.
// oauth2 schemes contribute the token of each flow in flow order. Unset fields are skipped;
// empty strings are kept. Other schemes and nil entries contribute nothing.
func Extract(schemes []SecurityScheme) []string {
	out := make([]string, 0, len(schemes))
	for _, scheme := range schemes {
		switch s := scheme.(type) {
		case *APIKeyScheme:
			if s != nil {
				out = appendPresent(out, s.SecretToken)
			}
		case *HTTPScheme:
			if s == nil {
				continue
			}
			out = appendPresent(out, s.SecretToken, s.SecretUsername, s.SecretPassword)
			if s.SecretUsername != nil && s.SecretPassword != nil {
				out = append(out, BasicCredential(*s.SecretUsername, *s.SecretPassword))
			}
		case *OAuth2Scheme:
			if s == nil {
				continue
			}
			for _, flow := range s.Flows {
				out = appendPresent(out, flow.SecretToken)
			}
		}
	}
	return out
}

// BasicCredential encodes username and password the way an Authorization: Basic header
// carries them.
func BasicCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

func appendPresent(dst []string, values ...*string) []string {
	for _, v := range values {
		if v != nil {
			dst = append(dst, *v)
		}
	}
	return dst
}
