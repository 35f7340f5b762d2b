package expect

// Registry is the ordered, append-only collection of expectations owned by
// one build unit. Insertion order is registration order and is preserved
// through evaluation. A Registry is never shared between units.
type Registry struct {
	owner        any
	expectations []*Expectation
}

// NewRegistry creates an empty registry owned by the given build unit.
// The owner is the default subject for expectations registered without an
// explicit one.
func NewRegistry(owner any) *Registry {
	return &Registry{owner: owner}
}

// Owner returns the owning build unit.
func (r *Registry) Owner() any {
	return r.owner
}

// Expect registers a new expectation and returns it. Registration is pure:
// the assertion block is not evaluated here.
//
// Arguments are resolved by type, mirroring the single polymorphic
// registration call form:
//   - a non-string, non-assertion argument is the explicit subject
//     (first one wins);
//   - a string argument is the description — used verbatim when no
//     explicit subject was given, synthesized as "<subject> <string>"
//     when both were;
//   - an Assertion (or func(any) error) is the deferred block;
//   - with no explicit subject, the subject is the owning build unit;
//   - with no string, the description defaults to the subject's textual
//     representation.
func (r *Registry) Expect(args ...any) *Expectation {
	var (
		subject    any
		desc       string
		hasSubject bool
		hasDesc    bool
		block      Assertion
	)

	for _, arg := range args {
		switch v := arg.(type) {
		case Assertion:
			block = v
		case func(any) error:
			block = v
		case string:
			if !hasDesc {
				desc = v
				hasDesc = true
			}
		default:
			if !hasSubject {
				subject = v
				hasSubject = true
			}
		}
	}

	if !hasSubject {
		subject = r.owner
	}

	e := &Expectation{Subject: subject, Assert: block}
	switch {
	case hasDesc && hasSubject:
		e.Description = describe(subject) + " " + desc
	case hasDesc:
		e.Description = desc
	default:
		e.Description = describe(subject)
	}

	r.expectations = append(r.expectations, e)
	return e
}

// Expectations returns the registered expectations in registration order.
func (r *Registry) Expectations() []*Expectation {
	return r.expectations
}

// Len returns the number of registered expectations.
func (r *Registry) Len() int {
	return len(r.expectations)
}
