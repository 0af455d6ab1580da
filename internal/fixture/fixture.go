// Package fixture loads seed participants from YAML and admits them to a team.
package fixture

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Participant is one seed registration. Fields go through the registration
// schema exactly like a submitted form.
type Participant struct {
	Email  string            `yaml:"email" validate:"required,email"`
	Fields map[string]string `yaml:"fields" validate:"required"`
}

// File is the top-level fixture document.
type File struct {
	Participants []Participant `yaml:"participants" validate:"dive"`
}

var validate = validator.New()

// Load reads and parses the fixture file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture document. Unknown keys and repeated emails are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Participants))
	for i, p := range f.Participants {
		key := strings.ToLower(strings.TrimSpace(p.Email))
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("invalid fixtures: participant %d repeats %s", i, p.Email)
		}
		seen[key] = struct{}{}
	}
	return &f, nil
}

// Values converts the fixture's fields to a registration payload.
func (p Participant) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(p.Fields))
	for k, v := range p.Fields {
		out[k] = v
	}
	return out
}
