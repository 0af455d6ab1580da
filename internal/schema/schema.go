// Package schema loads the registration form definition and validates submissions against it.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Field types.
const (
	TypeText   = "text"
	TypeSelect = "select"
)

// alwaysRequired fields back the participant's name and gender columns.
var alwaysRequired = []string{"name", "gender"}

//go:embed default.yaml
var defaultSchema []byte

var validate = validator.New()

// Field is one registration form input.
type Field struct {
	Key         string   `yaml:"key" json:"key" validate:"required"`
	Label       string   `yaml:"label" json:"label" validate:"required"`
	Type        string   `yaml:"type" json:"type" validate:"required,oneof=text select"`
	Required    bool     `yaml:"required" json:"required"`
	Options     []string `yaml:"options" json:"options,omitempty" validate:"required_if=Type select"`
	Placeholder string   `yaml:"placeholder" json:"placeholder,omitempty"`
	// Validate is a validator tag applied to non-empty values, e.g. "max=32".
	Validate string `yaml:"validate" json:"-"`
}

// Schema is the registration form definition.
type Schema struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Fields      []Field `yaml:"fields" json:"fields" validate:"required,min=1,dive"`

	byKey map[string]*Field
}

// Parse decodes and checks a YAML schema document.
func Parse(data []byte) (*Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schema: document is empty")
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	s.byKey = make(map[string]*Field, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if _, dup := s.byKey[f.Key]; dup {
			return nil, fmt.Errorf("schema: duplicate field key %q", f.Key)
		}
		if f.Validate != "" {
			if err := checkTag(f.Validate); err != nil {
				return nil, fmt.Errorf("schema: field %q: invalid validate tag %q: %v", f.Key, f.Validate, err)
			}
		}
		s.byKey[f.Key] = f
	}
	for _, key := range alwaysRequired {
		f, ok := s.byKey[key]
		if !ok {
			return nil, fmt.Errorf("schema: field %q is required", key)
		}
		f.Required = true
	}
	return &s, nil
}

// checkTag reports a malformed validator tag. validator panics on unknown tags.
func checkTag(tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	_ = validate.Var("", tag)
	return nil
}

// Default returns the built-in schema.
func Default() *Schema {
	s, err := Parse(defaultSchema)
	if err != nil {
		panic(err)
	}
	return s
}

// FieldError describes one rejected field.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Key + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

// Validate checks a submission. Values must be strings; unknown keys, missing
// required values, values outside a select's options and values failing the
// field's validate tag are rejected. The returned map holds trimmed values
// with empty optional fields dropped.
func (s *Schema) Validate(values map[string]interface{}) (map[string]interface{}, error) {
	var problems []FieldError
	clean := make(map[string]interface{}, len(values))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		f, ok := s.byKey[key]
		if !ok {
			problems = append(problems, FieldError{Key: key, Message: "unknown field"})
			continue
		}
		raw, ok := values[key].(string)
		if !ok && values[key] != nil {
			problems = append(problems, FieldError{Key: key, Message: "must be a string"})
			continue
		}
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if msg := f.check(value); msg != "" {
			problems = append(problems, FieldError{Key: key, Message: msg})
			continue
		}
		clean[key] = value
	}

	for _, f := range s.Fields {
		if _, ok := clean[f.Key]; !ok && f.Required && !hasProblem(problems, f.Key) {
			problems = append(problems, FieldError{Key: f.Key, Message: "is required"})
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Fields: problems}
	}
	return clean, nil
}

func (f *Field) check(value string) string {
	if f.Type == TypeSelect && !contains(f.Options, value) {
		return "must be one of " + strings.Join(f.Options, ", ")
	}
	if f.Validate != "" {
		if err := validate.Var(value, f.Validate); err != nil {
			return "fails " + f.Validate
		}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func hasProblem(problems []FieldError, key string) bool {
	for _, p := range problems {
		if p.Key == key {
			return true
		}
	}
	return false
}
