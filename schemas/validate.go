// Package schemas provides JSON Schema validation for the ranker's input documents.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed train_records.schema.json
var trainRecordsSchema string

var (
	trainRecordsOnce     sync.Once
	trainRecordsCompiled *gojsonschema.Schema
	trainRecordsErr      error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateTrainRecords validates a raw input document against the embedded train records schema.
func ValidateTrainRecords(doc []byte) error {
	trainRecordsOnce.Do(func() {
		trainRecordsCompiled, trainRecordsErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(trainRecordsSchema))
	})
	if trainRecordsErr != nil {
		return &SchemaLoadError{Message: "train records schema", Cause: trainRecordsErr}
	}
	return validate(trainRecordsCompiled, gojsonschema.NewBytesLoader(doc))
}

func validate(schema *gojsonschema.Schema, document gojsonschema.JSONLoader) error {
	result, err := schema.Validate(document)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
