package validation

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/seed.schema.json
var seedSchema []byte

// SeedSchemaName is the resource name the embedded catalog seed schema is compiled under
const SeedSchemaName = "seed.schema.json"

// SchemaValidator validates JSON documents against one compiled schema
type SchemaValidator interface {
	ValidateBytes(data []byte) error
}

type validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// NewSchemaValidator compiles schemaJSON under name
func NewSchemaValidator(name string, schemaJSON []byte) (SchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &validator{
		schema:  schema,
		printer: message.NewPrinter(language.English),
	}, nil
}

var seedValidator = sync.OnceValues(func() (SchemaValidator, error) {
	return NewSchemaValidator(SeedSchemaName, seedSchema)
})

// SeedValidator returns the validator for catalog seed files. The embedded
// schema is compiled once.
func SeedValidator() (SchemaValidator, error) {
	return seedValidator()
}

// ValidateBytes parses data and checks it against the schema
func (v *validator) ValidateBytes(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *validator) formatValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("validation error: %w", err)
	}
	var lines []string
	v.collectErrors(validationErr, &lines)
	return fmt.Errorf("schema validation failed:\n%s", strings.Join(lines, "\n"))
}

// collectErrors flattens the cause tree, reporting leaves only
func (v *validator) collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, v.formatError(err))
		return
	}
	for _, cause := range err.Causes {
		v.collectErrors(cause, lines)
	}
}

func (v *validator) formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind == nil {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	return fmt.Sprintf("  - at %s: %s", location, err.ErrorKind.LocalizedString(v.printer))
}
