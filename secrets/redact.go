package secrets

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const maskRune = "*"

// Redactor masks a fixed set of secrets. It is immutable and safe for concurrent use.
type Redactor struct {
	secrets []string
}

// NewRedactor builds a Redactor for secrets. Empty and duplicate values are ignored.
func NewRedactor(secrets []string) *Redactor {
	seen := make(map[string]struct{}, len(secrets))
	uniq := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}
	return &Redactor{secrets: uniq}
}

// Len reports how many distinct secrets the Redactor masks.
func (r *Redactor) Len() int {
	if r == nil {
		return 0
	}
	return len(r.secrets)
}

// Redact returns text with every byte covered by an occurrence of a secret masked.
// Overlapping and adjacent occurrences merge into one run of asterisks, one per rune.
func (r *Redactor) Redact(text string) string {
	if r.Len() == 0 || text == "" {
		return text
	}

	var spans []span
	for _, s := range r.secrets {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], s)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, span{start: start, end: start + len(s)})
			from = start + 1
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, sp := range merged {
		b.WriteString(text[prev:sp.start])
		b.WriteString(Mask(text[sp.start:sp.end]))
		prev = sp.end
	}
	b.WriteString(text[prev:])
	return b.String()
}

type span struct {
	start, end int
}

// Redact masks every occurrence of secrets in text.
func Redact(text string, secrets []string) string {
	return NewRedactor(secrets).Redact(text)
}

// Mask returns a run of asterisks as long as s in runes.
func Mask(s string) string {
	n := utf8.RuneCountInString(s)
	if n == 0 {
		n = 1
	}
	return strings.Repeat(maskRune, n)
}
