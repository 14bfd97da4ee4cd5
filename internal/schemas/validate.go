// Package schemas checks the JSON answers of the generative model against
// embedded JSON Schemas before the pipeline trusts them.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Name identifies an embedded schema.
type Name string

// Embedded schemas
const (
	// Personalization is the name-extraction answer
	Personalization Name = "personalization.schema.json"
	// Research is the compensation research answer
	Research Name = "research.schema.json"
)

//go:embed *.schema.json
var schemaFiles embed.FS

var (
	compiled   = make(map[Name]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

// FieldError is one violation at a field path; "(root)" for the document itself.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("document does not match %s: %s", ve.Schema, strings.Join(parts, "; "))
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Schema  Name
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks document against the named schema. A document that is not
// JSON at all is reported as a ValidationError on (root).
func Validate(name Name, document []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &ValidationError{Schema: name, Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// Decode validates document and unmarshals it into dst.
func Decode(name Name, document []byte, dst any) error {
	if err := Validate(name, document); err != nil {
		return err
	}
	if err := json.Unmarshal(document, dst); err != nil {
		return fmt.Errorf("decoding %s document: %w", name, err)
	}
	return nil
}

func load(name Name) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(string(name))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "schema not embedded", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "invalid schema", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}
