package secrets

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	schemeRefPrefix = "#/components/securitySchemes/"
	maxRefDepth     = 16
)

var (
	// ErrEmptyDocument is returned by Parse for blank input.
	ErrEmptyDocument = errors.New("secrets: empty document")
	// ErrNotMapping is returned by Parse when the document root is not an object.
	ErrNotMapping = errors.New("secrets: document root is not a mapping")
)

// Parse reads the security schemes of an OpenAPI 3.x document in JSON or YAML form.
// Scheme names and oauth2 flows keep the order in which the document declares them.
// A document without components.securitySchemes yields an empty Document.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("secrets: decode document: %w", err)
	}
	top := resolveNode(&root)
	if top != nil && top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		top = resolveNode(top.Content[0])
	}
	if top == nil || top.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	doc := newDocument()
	schemesNode := resolveNode(mappingValue(mappingValue(top, "components"), "securitySchemes"))
	if schemesNode == nil || schemesNode.Kind != yaml.MappingNode {
		return doc, nil
	}

	p := &schemeParser{raw: make(map[string]*yaml.Node)}
	var order []string
	// A repeated name keeps its first position; the last value wins.
	forEachPair(schemesNode, func(name string, value *yaml.Node) {
		if _, seen := p.raw[name]; !seen {
			order = append(order, name)
		}
		p.raw[name] = value
	})
	for _, name := range order {
		doc.add(name, p.decode(p.raw[name], 0))
	}
	return doc, nil
}

type schemeParser struct {
	raw map[string]*yaml.Node
}

func (p *schemeParser) decode(node *yaml.Node, depth int) SecurityScheme {
	node = resolveNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return &UnknownScheme{}
	}
	if ref, ok := scalarValue(mappingValue(node, "$ref")); ok {
		target, local := strings.CutPrefix(ref, schemeRefPrefix)
		next, found := p.raw[target]
		if !local || !found || depth >= maxRefDepth {
			return &UnknownScheme{Ref: ref}
		}
		return p.decode(next, depth+1)
	}

	kind, _ := scalarValue(mappingValue(node, "type"))
	switch kind {
	case TypeAPIKey:
		name, _ := scalarValue(mappingValue(node, "name"))
		in, _ := scalarValue(mappingValue(node, "in"))
		return &APIKeyScheme{
			Name:        name,
			In:          in,
			SecretToken: optionalValue(node, ExtSecretToken),
		}
	case TypeHTTP:
		scheme, _ := scalarValue(mappingValue(node, "scheme"))
		return &HTTPScheme{
			Scheme:         scheme,
			SecretToken:    optionalValue(node, ExtSecretToken),
			SecretUsername: optionalValue(node, ExtSecretUsername),
			SecretPassword: optionalValue(node, ExtSecretPassword),
		}
	case TypeOAuth2:
		scheme := &OAuth2Scheme{}
		flows := resolveNode(mappingValue(node, "flows"))
		if flows == nil || flows.Kind != yaml.MappingNode {
			return scheme
		}
		var names []string
		values := make(map[string]*yaml.Node)
		forEachPair(flows, func(name string, value *yaml.Node) {
			if _, seen := values[name]; !seen {
				names = append(names, name)
			}
			values[name] = value
		})
		for _, name := range names {
			value := resolveNode(values[name])
			if value == nil || value.Kind != yaml.MappingNode {
				continue
			}
			scheme.Flows = append(scheme.Flows, OAuthFlow{
				Name:        name,
				SecretToken: optionalValue(value, ExtSecretToken),
			})
		}
		return scheme
	default:
		return &UnknownScheme{Kind: kind}
	}
}

func resolveNode(node *yaml.Node) *yaml.Node {
	for i := 0; node != nil && node.Kind == yaml.AliasNode && i < maxRefDepth; i++ {
		node = node.Alias
	}
	if node != nil && node.Kind == yaml.AliasNode {
		return nil
	}
	return node
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	node = resolveNode(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	var value *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			value = node.Content[i+1]
		}
	}
	return value
}

func forEachPair(node *yaml.Node, fn func(key string, value *yaml.Node)) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		fn(node.Content[i].Value, node.Content[i+1])
	}
}

// scalarValue returns the literal text of a non-null scalar.
func scalarValue(node *yaml.Node) (string, bool) {
	node = resolveNode(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return "", false
	}
	return node.Value, true
}

// optionalValue reads an extension. Numbers are normalised with formatNumber so both
// loaders render them alike.
func optionalValue(node *yaml.Node, key string) *string {
	value := resolveNode(mappingValue(node, key))
	v, ok := scalarValue(value)
	if !ok {
		return nil
	}
	if tag := value.ShortTag(); tag == "!!int" || tag == "!!float" {
		var f float64
		if err := value.Decode(&f); err == nil {
			v = formatNumber(f)
		}
	}
	return &v
}

// formatNumber renders a numeric extension value, e.g. 1.0 as "1" and 2.50 as "2.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
