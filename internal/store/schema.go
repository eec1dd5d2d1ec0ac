package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const taskSchemaURL = "https://taskflow.dev/schemas/task.json"

// taskSchema describes one stored task record.
const taskSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["id", "text", "priority", "createdAt"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"text": {"type": "string", "pattern": "\\S"},
		"completed": {"type": "boolean"},
		"priority": {"enum": ["high", "medium", "low"]},
		"dueDate": {
			"oneOf": [
				{"type": "null"},
				{"type": "string", "format": "date-time"}
			]
		},
		"category": {"type": "string"},
		"createdAt": {"type": "string", "format": "date-time"},
		"attachments": {
			"oneOf": [
				{"type": "null"},
				{
					"type": "array",
					"maxItems": 3,
					"items": {
						"type": "object",
						"required": ["name"],
						"properties": {
							"id": {"type": "string"},
							"name": {"type": "string"},
							"type": {"type": "string"},
							"size": {"type": "integer", "minimum": 0},
							"path": {"type": "string"}
						}
					}
				}
			]
		}
	}
}`

var (
	compiledTaskSchema *jsonschema.Schema
	compileOnce        sync.Once
	compileErr         error
)

func loadTaskSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchema)); err != nil {
			compileErr = fmt.Errorf("adding task schema: %w", err)
			return
		}
		compiledTaskSchema, compileErr = compiler.Compile(taskSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling task schema: %w", compileErr)
		}
	})
	return compiledTaskSchema, compileErr
}

// ValidateTaskRecord checks a decoded JSON value (as produced by
// json.Unmarshal into an interface{}) against the stored task schema.
// The returned error lists every violation.
func ValidateTaskRecord(record interface{}) error {
	schema, err := loadTaskSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(record); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var msgs []string
		collectSchemaErrors(ve, &msgs)
		return fmt.Errorf("invalid task record: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
