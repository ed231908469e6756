package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// CheckResult describes the validation outcome for one data file.
type CheckResult struct {
	File    string
	Missing bool
	Err     error
}

// Check validates each data file against its embedded JSON Schema. A
// missing file is reported but is not an error; loads treat it as empty.
func (s *Store) Check() []CheckResult {
	results := make([]CheckResult, 0, 3)
	for _, name := range []string{tasksFile, habitsFile, goalsFile} {
		results = append(results, s.checkFile(name))
	}
	return results
}

func (s *Store) checkFile(name string) CheckResult {
	result := CheckResult{File: name}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			result.Missing = true
			return result
		}
		result.Err = fmt.Errorf("read: %w", err)
		return result
	}

	schema, err := compileSchema(name)
	if err != nil {
		result.Err = err
		return result
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Err = fmt.Errorf("parse: %w", err)
		return result
	}
	if err := schema.Validate(doc); err != nil {
		result.Err = err
	}
	return result
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("load embedded schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return schema, nil
}
