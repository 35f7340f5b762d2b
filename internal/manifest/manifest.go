// Package manifest loads declarative check manifests and turns them into
// expectation registries.
//
// A manifest is a YAML document describing a build unit's post-build
// expectations as data:
//
//	unit: my-app
//	checks:
//	  - file: build/out/app.txt
//	    assert: exists
//	  - archive: build/dist/app.zip
//	    path: resources
//	    assert: contains
//	    patterns: ["**/t*st"]
//
// Parsing is strict twice over: unknown YAML fields are rejected during
// decoding (typos like "asserts:" fail loudly), and the decoded document
// is validated against an embedded CUE schema before any expectation is
// built.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/checkpack/checkpack/internal/artifact"
	"github.com/checkpack/checkpack/internal/expect"
	"github.com/checkpack/checkpack/internal/matcher"
)

// Assertion names accepted in a check.
const (
	AssertExists   = "exists"
	AssertEmpty    = "empty"
	AssertContains = "contains"
)

// Manifest is a build unit's declarative check list.
type Manifest struct {
	// Unit names the build unit that owns these checks.
	Unit string `yaml:"unit"`

	// Checks are evaluated in order during verification.
	Checks []Check `yaml:"checks"`
}

// Check describes one expectation: exactly one subject (file, dir, or
// archive, optionally narrowed to a path or entry inside it) and one
// assertion.
type Check struct {
	// Description overrides the generated expectation label.
	Description string `yaml:"description,omitempty"`

	// File, Dir, Archive select the subject; exactly one must be set.
	// Paths are relative to the verification root directory.
	File    string `yaml:"file,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
	Archive string `yaml:"archive,omitempty"`

	// Path and Entry narrow an archive subject to a location or a
	// single entry inside it. At most one may be set, and only with
	// Archive.
	Path  string `yaml:"path,omitempty"`
	Entry string `yaml:"entry,omitempty"`

	// Assert names the matcher: "exists", "empty", or "contains".
	Assert string `yaml:"assert"`

	// Patterns are the contain patterns; required for "contains",
	// forbidden otherwise.
	Patterns []string `yaml:"patterns,omitempty"`
}

// Load reads, parses, and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse parses and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	// Re-decode generically for schema validation; the CUE schema sees
	// the document as written, not the Go struct.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate enforces the structural rules the schema cannot express
// field-locally: exactly one subject, archive-only narrowing, and
// pattern/assertion agreement.
func validate(m *Manifest) error {
	if m.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	for i := range m.Checks {
		c := &m.Checks[i]

		subjects := 0
		for _, s := range []string{c.File, c.Dir, c.Archive} {
			if s != "" {
				subjects++
			}
		}
		if subjects != 1 {
			return fmt.Errorf("checks[%d]: exactly one of file, dir, archive is required", i)
		}
		if (c.Path != "" || c.Entry != "") && c.Archive == "" {
			return fmt.Errorf("checks[%d]: path and entry require an archive subject", i)
		}
		if c.Path != "" && c.Entry != "" {
			return fmt.Errorf("checks[%d]: path and entry are mutually exclusive", i)
		}

		switch c.Assert {
		case AssertContains:
			if len(c.Patterns) == 0 {
				return fmt.Errorf("checks[%d]: contains requires at least one pattern", i)
			}
		case AssertExists, AssertEmpty:
			if len(c.Patterns) > 0 {
				return fmt.Errorf("checks[%d]: patterns are only valid with contains", i)
			}
		default:
			return fmt.Errorf("checks[%d]: unknown assertion %q", i, c.Assert)
		}
	}
	return nil
}

// Build converts a validated manifest into a registry of expectations.
// Subject paths resolve relative to root.
func Build(m *Manifest, root string) (*expect.Registry, error) {
	reg := expect.NewRegistry(m.Unit)
	for i := range m.Checks {
		c := m.Checks[i]
		subject, err := c.subject(root)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		block, err := c.assertion()
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		if c.Description != "" {
			reg.Expect(subject, c.Description, block)
		} else {
			reg.Expect(subject, block)
		}
	}
	return reg, nil
}

func (c *Check) subject(root string) (artifact.Artifact, error) {
	join := func(p string) string {
		return filepath.Join(root, filepath.FromSlash(p))
	}
	switch {
	case c.File != "":
		return artifact.NewFile(join(c.File)), nil
	case c.Dir != "":
		return artifact.NewDir(join(c.Dir)), nil
	case c.Archive != "":
		a := artifact.NewArchive(join(c.Archive))
		switch {
		case c.Entry != "":
			return a.Entry(c.Entry), nil
		case c.Path != "":
			return a.Path(c.Path), nil
		default:
			return a, nil
		}
	}
	return nil, fmt.Errorf("no subject")
}

func (c *Check) assertion() (expect.Assertion, error) {
	asArtifact := func(s any) (artifact.Artifact, error) {
		a, ok := s.(artifact.Artifact)
		if !ok {
			return nil, fmt.Errorf("subject %v is not an artifact", s)
		}
		return a, nil
	}

	switch c.Assert {
	case AssertExists:
		return func(s any) error {
			a, err := asArtifact(s)
			if err != nil {
				return err
			}
			return matcher.Exist(a)
		}, nil
	case AssertEmpty:
		return func(s any) error {
			a, err := asArtifact(s)
			if err != nil {
				return err
			}
			return matcher.BeEmpty(a)
		}, nil
	case AssertContains:
		patterns := c.Patterns
		return func(s any) error {
			a, err := asArtifact(s)
			if err != nil {
				return err
			}
			return matcher.Contain(a, patterns...)
		}, nil
	default:
		return nil, fmt.Errorf("unknown assertion %q", c.Assert)
	}
}
