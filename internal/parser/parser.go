package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"settingskit/pkg/blueprint"
)

// ErrNotFound is returned when the blueprint file does not exist.
var ErrNotFound = errors.New("blueprint file not found")

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Parse reads and validates a blueprint file, returning the parsed Blueprint
// or an error. The format follows the extension: .yaml/.yml, or .json/.jsonc
// (JSON with comments and trailing commas).
func Parse(filePath string) (*blueprint.Blueprint, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	default:
		return nil, fmt.Errorf("unsupported blueprint extension %q: use .yaml, .yml, .json or .jsonc", filepath.Ext(filePath))
	}

	return ParseBytes(data)
}

// ParseBytes decodes and validates a YAML or JSON blueprint document.
func ParseBytes(data []byte) (*blueprint.Blueprint, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var bp blueprint.Blueprint
	if err := dec.Decode(&bp); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse blueprint file - document is empty")
		}
		return nil, fmt.Errorf("failed to parse blueprint file - malformed document: %w", err)
	}

	if err := validate.Struct(&bp); err != nil {
		return nil, formatValidationError(err)
	}

	return &bp, nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, formatFieldError(e))
		}

		if len(errorMessages) == 1 {
			return fmt.Errorf("validation error: %s", errorMessages[0])
		}

		result := "validation errors:\n"
		for _, msg := range errorMessages {
			result += fmt.Sprintf("  - %s\n", msg)
		}
		return fmt.Errorf("%s", result)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatFieldError formats a single validation error. Fields are named by
// their document path, e.g. spec.project.buildTypes[0].id.
func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e)
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "eq":
		return fmt.Sprintf("field '%s' must be '%s'", field, e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("field '%s' must be a valid URL", field)
	case "min", "max":
		return fmt.Sprintf("field '%s' must be %s %s", field, map[string]string{"min": "at least", "max": "at most"}[tag], e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, tag)
	}
}

func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
