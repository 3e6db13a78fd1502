// Package schemas validates API payloads against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed resume.schema.json
	resumeSchema string
	//go:embed job_posting.schema.json
	jobPostingSchema string
)

// Schema names.
const (
	Resume     = "resume"
	JobPosting = "job_posting"
)

var sources = map[string]string{
	Resume:     resumeSchema,
	JobPosting: jobPostingSchema,
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		if i > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(fmt.Sprintf(" %s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing a schema itself
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func compile() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema, len(sources))
		for name, src := range sources {
			s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
			if err != nil {
				compileErr = &SchemaLoadError{Name: name, Cause: err}
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// Validate checks a JSON document against the named schema. It returns a
// *ValidationError when the document does not conform.
func Validate(name string, document []byte) error {
	schemas, err := compile()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return &SchemaLoadError{Name: name, Cause: fmt.Errorf("unknown schema")}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   fieldPath(desc),
			Message: desc.Description(),
		})
	}
	return validationErr
}

// fieldPath returns the dotted path of the offending field. Errors about a
// named property, such as a missing required one, point at that property.
func fieldPath(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == "" {
		field = "(root)"
	}
	prop, ok := desc.Details()["property"].(string)
	if !ok || prop == "" || field == prop || strings.HasSuffix(field, "."+prop) {
		return field
	}
	if field == "(root)" {
		return prop
	}
	return field + "." + prop
}

// ValidateResume validates a resume payload.
func ValidateResume(document []byte) error {
	return Validate(Resume, document)
}

// ValidateJobPosting validates a job posting payload.
func ValidateJobPosting(document []byte) error {
	return Validate(JobPosting, document)
}
