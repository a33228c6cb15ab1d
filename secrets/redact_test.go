package secrets

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		secrets  []string
		expected string
	}{
		{
			name:     "no secrets",
			text:     "curl https://api.example.com",
			expected: "curl https://api.example.com",
		},
		{
			name:     "basic auth header",
			text:     "curl --user alice:s3cret -H 'Authorization: Basic YWxpY2U6czNjcmV0'",
			secrets:  Extract([]SecurityScheme{&HTTPScheme{SecretUsername: String("alice"), SecretPassword: String("s3cret")}}),
			expected: "curl --user *****:****** -H 'Authorization: Basic ****************'",
		},
		{
			name:     "longest secret wins",
			text:     "token=abcdef",
			secrets:  []string{"abc", "abcdef"},
			expected: "token=******",
		},
		{
			name:     "partially overlapping secrets",
			text:     "abcdef",
			secrets:  []string{"abc", "bcdef"},
			expected: "******",
		},
		{
			name:     "overlap of equal length secrets",
			text:     "xabcdef",
			secrets:  []string{"abcd", "cdef"},
			expected: "x******",
		},
		{
			name:     "secret overlapping itself",
			text:     "aaa-",
			secrets:  []string{"aa"},
			expected: "***-",
		},
		{
			name:     "empty secrets are ignored",
			text:     "keep me",
			secrets:  []string{"", ""},
			expected: "keep me",
		},
		{
			name:     "repeated occurrences",
			text:     "k1 k1 k1",
			secrets:  []string{"k1", "k1"},
			expected: "** ** **",
		},
		{
			name:     "mask counts runes",
			text:     "pw=пароль",
			secrets:  []string{"пароль"},
			expected: "pw=******",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Redact(tt.text, tt.secrets))
		})
	}
}

func TestRedactorLen(t *testing.T) {
	assert.Equal(t, 2, NewRedactor([]string{"a", "", "b", "a"}).Len())

	var r *Redactor
	assert.Zero(t, r.Len())
	assert.Equal(t, "text", r.Redact("text"))
}

func TestRedactorConcurrentUse(t *testing.T) {
	r := NewRedactor([]string{"secret"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "x ****** y", r.Redact("x secret y"))
		}()
	}
	wg.Wait()
}

func TestMask(t *testing.T) {
	assert.Equal(t, "*", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
}
