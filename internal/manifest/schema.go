package manifest

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// schemaSource is the CUE schema every manifest document must satisfy.
// Definitions are closed, so fields the schema does not name are rejected
// at this layer too, independent of the strict YAML decode.
const schemaSource = `
#Check: {
	description?: string
	file?:        string
	dir?:         string
	archive?:     string
	path?:        string
	entry?:       string
	assert:       "exists" | "empty" | "contains"
	patterns?: [...string]
}

#Manifest: {
	unit: string
	checks: [...#Check]
}
`

// validateSchema unifies the generically-decoded manifest document with
// the #Manifest definition and requires the result to be concrete.
func validateSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("manifest schema is invalid: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("manifest schema is invalid: %w", err)
	}

	unified := def.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("manifest schema: %s", cueerrors.Details(err, nil))
	}
	return nil
}
