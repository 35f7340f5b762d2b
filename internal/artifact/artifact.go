package artifact

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Artifact is the uniform contract over all inspectable build outputs.
//
// Implementations must never trigger a producing step: existence and
// emptiness queries observe the filesystem as it is.
type Artifact interface {
	// Describe returns a short human-readable identity for failure
	// messages, e.g. "file build/out/app.txt" or
	// "entry resources/test in archive dist/app.zip".
	Describe() string

	// Exists reports whether the artifact is present per its kind's
	// semantics. I/O failures (as opposed to clean non-existence)
	// return an *AccessError.
	Exists() (bool, error)

	// Empty reports whether the artifact is present but empty per its
	// kind's semantics. A missing artifact is reported as not empty
	// (false) with no error; callers distinguish the two via Exists.
	Empty() (bool, error)
}

// Container is an Artifact whose contents are addressable as paths:
// a directory, an archive, or a path prefix inside an archive.
type Container interface {
	Artifact

	// DescendantPaths returns the paths of all files below the
	// container's root, relative to that root, using "/" separators.
	DescendantPaths() ([]string, error)
}

// Leaf is an Artifact with byte content: a loose file or a single
// archive entry.
type Leaf interface {
	Artifact

	// Content returns the artifact's full (decompressed) content.
	Content() ([]byte, error)
}

// normalizePath canonicalizes an entry path: Unicode NFC (archives written
// by different tools may disagree on composition), "/" separators, and no
// empty or "." segments. Joining "a" and "b" therefore always yields the
// same canonical path as the single string "a/b".
func normalizePath(parts ...string) string {
	var segs []string
	for _, part := range parts {
		for _, seg := range strings.Split(part, "/") {
			if seg == "" || seg == "." {
				continue
			}
			segs = append(segs, seg)
		}
	}
	return norm.NFC.String(strings.Join(segs, "/"))
}
