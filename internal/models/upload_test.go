package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single", "photos", []string{"photos"}},
		{"trims whitespace", " a ,  b ", []string{"a", "b"}},
		{"drops empty tokens", "a, b, b, ", []string{"a", "b", "b"}},
		{"only separators", " , ,, ", []string{}},
		{"duplicates kept", "x,x,x", []string{"x", "x", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}

func TestFormatTags(t *testing.T) {
	assert.Equal(t, "a, b, c", FormatTags([]string{"a", "b", "c"}))
	assert.Equal(t, "", FormatTags(nil))
}

func TestNewBlobKeyShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := NewBlobKey()
		require.True(t, ValidBlobKey(key), "generated key %q has invalid shape", key)
		require.Len(t, key, 36)
		// version nibble fixed to 4, variant nibble to 8/9/a/b
		assert.Equal(t, byte('4'), key[14])
		assert.Contains(t, "89ab", string(key[19]))
		require.False(t, seen[key], "duplicate key generated: %s", key)
		seen[key] = true
	}
}

func TestValidBlobKey(t *testing.T) {
	assert.True(t, ValidBlobKey("1b4e28ba-2fa1-4d3b-8a1c-5078c9a3f1e2"))

	assert.False(t, ValidBlobKey(""))
	assert.False(t, ValidBlobKey("not-a-key"))
	// uppercase hex is not the canonical form
	assert.False(t, ValidBlobKey("1B4E28BA-2FA1-4D3B-8A1C-5078C9A3F1E2"))
	// wrong version nibble
	assert.False(t, ValidBlobKey("1b4e28ba-2fa1-1d3b-8a1c-5078c9a3f1e2"))
	// wrong variant nibble
	assert.False(t, ValidBlobKey("1b4e28ba-2fa1-4d3b-7a1c-5078c9a3f1e2"))
	// wrong length
	assert.False(t, ValidBlobKey("1b4e28ba-2fa1-4d3b-8a1c-5078c9a3f1e"))
}
