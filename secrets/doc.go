// Package secrets extracts the example credentials that OpenAPI security schemes carry in
// their x-scalar-secret-* extensions, so an API reference UI can pre-fill them in request
// examples or mask them before display.
//
// Schemes come from an OpenAPI document loaded with Parse (document order preserved) or with
// kin-openapi through FromOpenAPI3 and LoadOpenAPI3. Extract flattens them into a list of
// strings and Redact hides those strings in rendered text.
package secrets
