package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaJSON = `{
  "type": "object",
  "properties": {
    "hooks": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"enum": ["action", "filter"]},
          "hook": {"type": "string", "minLength": 1},
          "callback": {"type": "string", "minLength": 1},
          "tag": {"type": "string"},
          "args": {"type": "array"}
        },
        "required": ["type", "hook", "callback"],
        "additionalProperties": false
      }
    }
  },
  "required": ["hooks"],
  "additionalProperties": false
}`

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// ValidationError reports a manifest that does not match the expected shape.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func manifestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("failed to parse manifest schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.json", doc); err != nil {
			compileErr = fmt.Errorf("failed to add manifest schema: %w", err)
			return
		}

		compiledSchema, compileErr = c.Compile("manifest.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile manifest schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks a generically decoded YAML document against the schema.
// The document is round-tripped through JSON so that numbers and maps take
// the forms the validator expects.
func validate(doc any) error {
	s, err := manifestSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Err: fmt.Errorf("document is not JSON compatible: %w", err)}
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return &ValidationError{Err: err}
	}

	if err := s.Validate(inst); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
