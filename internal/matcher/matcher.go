// Package matcher implements the three artifact-aware predicates used in
// expectation blocks: Exist, BeEmpty, and Contain.
//
// Matchers are stateless free functions taking the artifact explicitly.
// They return nil when the predicate holds and a *Failure describing the
// mismatch when it does not. I/O errors from the artifact layer propagate
// unchanged so the verification runner can report them as the failing
// expectation's cause.
//
// Contain dispatches on capability, never on concrete kind: leaf artifacts
// (content) treat patterns as regular expressions that must match somewhere
// in the content; container artifacts (descendant listings) treat patterns
// as path globs where "*" matches within one segment and "**" matches zero
// or more whole segments. All supplied patterns must be satisfied.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/checkpack/checkpack/internal/artifact"
)

// Matcher names used in failure diagnostics.
const (
	MatcherExist   = "exist"
	MatcherBeEmpty = "be_empty"
	MatcherContain = "contain"
)

// Failure reports a single matcher predicate that evaluated false.
type Failure struct {
	// Subject is the description of the artifact under test.
	Subject string

	// Matcher is the predicate name (MatcherExist, MatcherBeEmpty,
	// MatcherContain).
	Matcher string

	// Patterns are the patterns supplied to Contain, if any.
	Patterns []string

	// Detail states why the predicate did not hold.
	Detail string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expected %s to %s", f.Subject, f.Matcher)
	if len(f.Patterns) > 0 {
		fmt.Fprintf(&b, " %q", f.Patterns)
	}
	fmt.Fprintf(&b, ": %s", f.Detail)
	return b.String()
}

// Exist checks that the artifact exists per its kind's semantics.
func Exist(a artifact.Artifact) error {
	ok, err := a.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return &Failure{
			Subject: a.Describe(),
			Matcher: MatcherExist,
			Detail:  "it does not exist",
		}
	}
	return nil
}

// BeEmpty checks that the artifact exists and is empty. Non-existence is
// not emptiness: a missing artifact fails.
func BeEmpty(a artifact.Artifact) error {
	ok, err := a.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return &Failure{
			Subject: a.Describe(),
			Matcher: MatcherBeEmpty,
			Detail:  "it does not exist",
		}
	}
	empty, err := a.Empty()
	if err != nil {
		return err
	}
	if !empty {
		return &Failure{
			Subject: a.Describe(),
			Matcher: MatcherBeEmpty,
			Detail:  "it is not empty",
		}
	}
	return nil
}

// Contain checks that the artifact contains all supplied patterns: content
// regular expressions for leaf artifacts, descendant path globs for
// container artifacts. A missing artifact fails immediately. Zero patterns
// always fails — a bare contain asserts nothing and is treated as an
// accidental no-op check.
func Contain(a artifact.Artifact, patterns ...string) error {
	ok, err := a.Exists()
	if err != nil {
		return err
	}
	if !ok {
		return &Failure{
			Subject:  a.Describe(),
			Matcher:  MatcherContain,
			Patterns: patterns,
			Detail:   "it does not exist",
		}
	}
	if len(patterns) == 0 {
		return &Failure{
			Subject: a.Describe(),
			Matcher: MatcherContain,
			Detail:  "no patterns were supplied",
		}
	}

	switch s := a.(type) {
	case artifact.Leaf:
		return containContent(s, patterns)
	case artifact.Container:
		return containPaths(s, patterns)
	default:
		return fmt.Errorf("contain: %s exposes neither content nor descendant paths", a.Describe())
	}
}

// containContent requires every pattern to match somewhere in the leaf's
// content.
func containContent(leaf artifact.Leaf, patterns []string) error {
	content, err := leaf.Content()
	if err != nil {
		return err
	}

	var missed []string
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("contain: invalid content pattern %q: %w", pattern, err)
		}
		if !re.Match(content) {
			missed = append(missed, pattern)
		}
	}
	if len(missed) > 0 {
		return &Failure{
			Subject:  leaf.Describe(),
			Matcher:  MatcherContain,
			Patterns: patterns,
			Detail:   fmt.Sprintf("content does not match %q", missed),
		}
	}
	return nil
}

// containPaths requires every glob to match at least one descendant path.
func containPaths(container artifact.Container, patterns []string) error {
	paths, err := container.DescendantPaths()
	if err != nil {
		return err
	}

	var missed []string
	for _, pattern := range patterns {
		glob, err := compileGlob(pattern)
		if err != nil {
			return fmt.Errorf("contain: invalid path glob %q: %w", pattern, err)
		}
		if !matchesAny(glob, paths) {
			missed = append(missed, pattern)
		}
	}
	if len(missed) > 0 {
		return &Failure{
			Subject:  container.Describe(),
			Matcher:  MatcherContain,
			Patterns: patterns,
			Detail:   fmt.Sprintf("no descendant path matches %q", missed),
		}
	}
	return nil
}

func matchesAny(glob *regexp.Regexp, paths []string) bool {
	for _, p := range paths {
		if glob.MatchString(p) {
			return true
		}
	}
	return false
}
