package requirements

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Verdict is the outcome of validating a document against an OpenAPI
// meta-schema. A nil Verdict passed to Check means no meta-schema
// validation was performed.
type Verdict struct {
	Valid  bool
	Errors []string
}

// Conform validates docJSON against the given JSON Schema meta-schema and
// folds the result into a Verdict. Schema compilation failures are returned
// as errors; instance validation failures land in the Verdict.
func Conform(schemaJSON, docJSON []byte) (*Verdict, error) {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding meta-schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("meta.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("registering meta-schema: %w", err)
	}
	schema, err := compiler.Compile("meta.json")
	if err != nil {
		return nil, fmt.Errorf("compiling meta-schema: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(docJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		return &Verdict{Errors: flattenCauses(ve, nil)}, nil
	}
	return &Verdict{Valid: true}, nil
}

// flattenCauses collects the leaf causes of a validation error, which carry
// the concrete keyword failures.
func flattenCauses(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		return append(out, ve.Error())
	}
	for _, cause := range ve.Causes {
		out = flattenCauses(cause, out)
	}
	return out
}
