package matcher

import (
	"regexp"
	"strings"
)

// compileGlob translates a segment-aware path glob into an anchored
// regular expression.
//
// Semantics:
//   - "*" matches any run of characters within one segment (never "/")
//   - "?" matches one character within a segment
//   - "**" as a whole segment matches zero or more full segments
//   - everything else is literal
//
// So "test" matches only a top-level entry named "test", while "**/t*st"
// also matches "with/test".
func compileGlob(pattern string) (*regexp.Regexp, error) {
	segs := strings.Split(pattern, "/")

	var b strings.Builder
	b.WriteString("^")
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg == "**" {
			if last {
				b.WriteString(".*")
			} else {
				b.WriteString("(?:[^/]+/)*")
			}
			continue
		}
		b.WriteString(globSegment(seg))
		if !last {
			b.WriteString("/")
		}
	}
	b.WriteString("$")

	return regexp.Compile(b.String())
}

func globSegment(seg string) string {
	var b strings.Builder
	for _, r := range seg {
		switch r {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
