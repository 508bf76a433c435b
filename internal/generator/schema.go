package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	evidencesSchema = "evidences.schema.json"
	runReportSchema = "run_report.schema.json"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

func loadCompiledSchema(name string) (*jsonschema.Schema, error) {
	schemaCacheMu.Lock()
	if cached, ok := schemaCache[name]; ok {
		schemaCacheMu.Unlock()
		return cached, nil
	}
	schemaCacheMu.Unlock()

	raw, err := schemaFiles.ReadFile("schemas/" + name)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, err
	}

	schemaCacheMu.Lock()
	schemaCache[name] = compiled
	schemaCacheMu.Unlock()
	return compiled, nil
}

// validateWithSchema checks value's JSON form against an embedded schema.
func validateWithSchema(name string, value any) error {
	schema, err := loadCompiledSchema(name)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", name, err)
	}

	var v any
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal for schema validation: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%s schema validation failed: %w", name, err)
	}
	return nil
}
