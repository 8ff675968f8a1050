// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package forms loads declarative rule sets for the validation package from
// YAML documents.
//
// A document maps form names to an ordered list of fields and optional
// message overrides:
//
//	register:
//	  fields:
//	    - name: username
//	      rules: [required, "min:3", "unique:users"]
//	  messages:
//	    username: Pick another username.
//	    email:
//	      email: That address looks wrong.
//
// Rule tags are parsed while loading, so a broken definition is reported at
// startup rather than on the first submission.
package forms

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-community/internal/validation"
	"gopkg.in/yaml.v3"
)

//go:embed forms.yaml
var defaultDefinitions []byte

// Form is a named rule set ready for validation.FieldValidator.
type Form struct {
	Name     string
	Fields   validation.FieldRules
	Messages validation.Messages
}

// Definitions holds forms by name.
type Definitions map[string]Form

// Form looks up a form by name.
func (d Definitions) Form(name string) (Form, bool) {
	form, ok := d[name]
	return form, ok
}

type formSpec struct {
	Fields   []fieldSpec            `yaml:"fields"`
	Messages map[string]messageSpec `yaml:"messages"`
}

type fieldSpec struct {
	Name  string   `yaml:"name"`
	Rules []string `yaml:"rules"`
}

type messageSpec struct {
	message validation.Message
}

// UnmarshalYAML accepts either a string (generic override) or a mapping of
// rule name to text.
func (m *messageSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var text string
		if err := value.Decode(&text); err != nil {
			return err
		}
		m.message = validation.Generic(text)
		return nil

	case yaml.MappingNode:
		var raw map[string]string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		byRule := make(map[validation.Kind]string, len(raw))
		for name, text := range raw {
			kind := validation.Kind(name)
			if !kind.Valid() {
				return fmt.Errorf("%w: message for %q at line %d", validation.ErrUnknownRule, name, value.Line)
			}
			byRule[kind] = text
		}
		m.message = validation.PerRule(byRule)
		return nil
	}

	return fmt.Errorf("%w: message at line %d must be a string or a mapping", ErrMalformedDefinition, value.Line)
}

// Default returns the built-in register and login forms.
func Default() (Definitions, error) {
	return Load(bytes.NewReader(defaultDefinitions))
}

// LoadFile reads definitions from a YAML file.
func LoadFile(path string) (Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingDefinitions, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes definitions from r. Unknown keys, unknown rule names and
// malformed rule arguments are errors.
func Load(r io.Reader) (Definitions, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var specs map[string]formSpec
	if err := decoder.Decode(&specs); err != nil {
		if errors.Is(err, io.EOF) {
			return Definitions{}, nil
		}
		if errors.Is(err, validation.ErrUnknownRule) || errors.Is(err, ErrMalformedDefinition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedDefinition, err)
	}

	definitions := make(Definitions, len(specs))
	for name, spec := range specs {
		form, err := buildForm(name, spec)
		if err != nil {
			return nil, err
		}
		definitions[name] = form
	}

	return definitions, nil
}

func buildForm(name string, spec formSpec) (Form, error) {
	form := Form{
		Name:     name,
		Fields:   make(validation.FieldRules, 0, len(spec.Fields)),
		Messages: make(validation.Messages, len(spec.Messages)),
	}

	seen := make(map[string]struct{}, len(spec.Fields))
	for _, field := range spec.Fields {
		if field.Name == "" {
			return Form{}, fmt.Errorf("%w: form %q has a field without a name", ErrMalformedDefinition, name)
		}
		if _, ok := seen[field.Name]; ok {
			return Form{}, fmt.Errorf("%w: form %q declares field %q twice", ErrMalformedDefinition, name, field.Name)
		}
		seen[field.Name] = struct{}{}

		rules := make([]validation.Rule, 0, len(field.Rules))
		for _, tag := range field.Rules {
			rule, err := ParseRule(tag)
			if err != nil {
				return Form{}, fmt.Errorf("form %q field %q: %w", name, field.Name, err)
			}
			rules = append(rules, rule)
		}
		form.Fields = append(form.Fields, validation.Field(field.Name, rules...))
	}

	for field, msg := range spec.Messages {
		form.Messages[field] = msg.message
	}

	return form, nil
}

// ParseRule converts a rule tag such as "min:3" or "unique:users" into a
// validation.Rule.
func ParseRule(tag string) (validation.Rule, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(tag), ":")
	kind := validation.Kind(strings.ToLower(strings.TrimSpace(name)))
	arg = strings.TrimSpace(arg)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", validation.ErrUnknownRule, tag)
	}

	switch kind {
	case validation.KindMin, validation.KindMax:
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q needs a non-negative length", validation.ErrInvalidRuleArgument, tag)
		}
		if kind == validation.KindMin {
			return validation.Min(n), nil
		}
		return validation.Max(n), nil

	case validation.KindMatches:
		if arg == "" {
			return nil, fmt.Errorf("%w: %q needs a field name", validation.ErrInvalidRuleArgument, tag)
		}
		return validation.Matches(arg), nil

	case validation.KindUnique:
		if arg == "" {
			return nil, fmt.Errorf("%w: %q needs a collection", validation.ErrInvalidRuleArgument, tag)
		}
		return validation.Unique(arg), nil

	case validation.KindIsActive:
		return validation.IsActive(arg), nil

	case validation.KindIsBanned:
		return validation.IsBanned(arg), nil
	}

	if hasArg {
		return nil, fmt.Errorf("%w: %q takes no argument", validation.ErrInvalidRuleArgument, tag)
	}

	switch kind {
	case validation.KindRequired:
		return validation.Required(), nil
	case validation.KindAgree:
		return validation.Agree(), nil
	case validation.KindEmail:
		return validation.Email(), nil
	case validation.KindTimezone:
		return validation.Timezone(), nil
	case validation.KindAlphanumeric:
		return validation.Alphanumeric(), nil
	default:
		return validation.Numeric(), nil
	}
}
