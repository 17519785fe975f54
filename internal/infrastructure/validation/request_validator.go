// Package validation checks users API request bodies against JSON Schemas.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://reglet.dev/userprofiles/schemas/"

// ErrMalformedJSON is returned when a body is not valid JSON.
var ErrMalformedJSON = errors.New("invalid request body")

// Ensure interface compliance
var _ ports.RequestValidator = (*RequestValidator)(nil)

// RequestValidator validates create and update bodies.
// Schemas are compiled once; the validator is safe for concurrent use.
type RequestValidator struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
}

// NewRequestValidator compiles the embedded schemas.
func NewRequestValidator() (*RequestValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schemas: %w", err)
	}
	for _, e := range entries {
		data, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", e.Name(), err)
		}
		if err := compiler.AddResource(schemaBaseURL+e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", e.Name(), err)
		}
	}

	create, err := compiler.Compile(schemaBaseURL + "create_user.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile create schema: %w", err)
	}
	update, err := compiler.Compile(schemaBaseURL + "update_user.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile update schema: %w", err)
	}

	return &RequestValidator{create: create, update: update}, nil
}

// ValidateCreate checks a create-user body.
func (v *RequestValidator) ValidateCreate(body []byte) error {
	return validate(v.create, body)
}

// ValidateUpdate checks an update-user body.
func (v *RequestValidator) ValidateUpdate(body []byte) error {
	return validate(v.update, body)
}

func validate(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrMalformedJSON)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return apperrors.NewValidationError("body", "request does not match schema", collectMessages(validationErr)...)
		}
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}

// collectMessages flattens a validation error tree into "location: message"
// lines, leaves only, sorted and deduplicated.
func collectMessages(err *jsonschema.ValidationError) []string {
	seen := make(map[string]bool)

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			seen[fmt.Sprintf("%s: %s", location, e.Message)] = true
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)

	messages := make([]string, 0, len(seen))
	for m := range seen {
		messages = append(messages, m)
	}
	sort.Strings(messages)
	return messages
}
