package sources

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema guarding a top-level source payload.
type Schema struct {
	Name       string
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// CheckSchema validates raw JSON against schema. Parse and validation
// failures are reported as KindInvalidContent; empty input is
// KindSourceNotFound.
func CheckSchema(source string, schema *Schema, raw []byte) error {
	if len(raw) == 0 {
		return NotFound(source, fmt.Errorf("empty payload"))
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Invalid(source, fmt.Errorf("invalid JSON: %w", err))
	}
	if parsed == nil {
		return NotFound(source, fmt.Errorf("payload is null"))
	}
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return Invalid(source, fmt.Errorf("compile schema %q: %w", schema.Name, err))
	}
	if err := compiled.Validate(parsed); err != nil {
		return Invalid(source, fmt.Errorf("schema validation failed: %w", err))
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
