package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileGlob(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		match   bool
	}{
		// Literals match exactly, one segment only.
		{"test", "test", true},
		{"test", "with/test", false},
		{"test", "testx", false},

		// "*" stays within a segment.
		{"t*st", "test", true},
		{"t*st", "tst", true},
		{"t*st", "te/st", false},
		{"*.json", "manifest.json", true},
		{"*.json", "sub/manifest.json", false},

		// "?" matches exactly one in-segment character.
		{"t?st", "test", true},
		{"t?st", "tst", false},
		{"t?st", "t/st", false},

		// "**" matches zero or more whole segments.
		{"**/t*st", "with/test", true},
		{"**/t*st", "a/b/test", true},
		{"**/t*st", "test", true},
		{"a/**/b", "a/b", true},
		{"a/**/b", "a/x/b", true},
		{"a/**/b", "a/x/y/b", true},
		{"a/**/b", "ab", false},
		{"a/**", "a/x", true},
		{"a/**", "a/x/y", true},
		{"a/**", "b/x", false},
		{"**", "anything/at/all", true},

		// Regexp metacharacters in segments are literal.
		{"a.b", "a.b", true},
		{"a.b", "axb", false},
	}

	for _, tc := range cases {
		t.Run(tc.pattern+"~"+tc.path, func(t *testing.T) {
			g, err := compileGlob(tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.match, g.MatchString(tc.path),
				"pattern %q against %q", tc.pattern, tc.path)
		})
	}
}
