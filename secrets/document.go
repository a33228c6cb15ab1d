package secrets

// Document holds the named security schemes of an OpenAPI document.
type Document struct {
	names   []string
	schemes []SecurityScheme
	index   map[string]int
}

func newDocument() *Document {
	return &Document{index: make(map[string]int)}
}

func (d *Document) add(name string, scheme SecurityScheme) {
	if _, exists := d.index[name]; exists {
		return
	}
	d.index[name] = len(d.schemes)
	d.names = append(d.names, name)
	d.schemes = append(d.schemes, scheme)
}

// Len reports the number of schemes.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.schemes)
}

// Names returns the scheme names in document order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Schemes returns all schemes in document order.
func (d *Document) Schemes() []SecurityScheme {
	if d == nil {
		return nil
	}
	return append([]SecurityScheme(nil), d.schemes...)
}

// Lookup returns the scheme registered under name.
func (d *Document) Lookup(name string) (SecurityScheme, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.schemes[i], true
}

// Select returns the named schemes in the order requested. Unknown names are skipped.
func (d *Document) Select(names ...string) []SecurityScheme {
	out := make([]SecurityScheme, 0, len(names))
	for _, name := range names {
		if scheme, ok := d.Lookup(name); ok {
			out = append(out, scheme)
		}
	}
	return out
}

// Secrets extracts the credentials of every scheme in the document.
func (d *Document) Secrets() []string {
	return Extract(d.Schemes())
}
