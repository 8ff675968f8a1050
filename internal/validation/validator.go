// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-community/internal/logger"
)

// FieldValidator checks a submitted Source against FieldRules and collects
// one message per failed rule.
//
// A FieldValidator is request-scoped: build one per submission, call Check
// once and read Passed and Errors. It is not safe for concurrent use.
type FieldValidator struct {
	sanitizer Sanitizer
	records   RecordStore
	messages  Messages

	errors []string
	passed bool
}

// Option configures a FieldValidator at construction time.
type Option func(*FieldValidator)

// WithRecordStore binds the store used by unique, isactive and isbanned.
// Without it those rules are rejected as misconfiguration.
func WithRecordStore(records RecordStore) Option {
	return func(v *FieldValidator) {
		v.records = records
	}
}

// New constructs a FieldValidator that escapes field names with sanitizer.
func New(sanitizer Sanitizer, opts ...Option) *FieldValidator {
	v := &FieldValidator{
		sanitizer: sanitizer,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Messages replaces the installed override table.
func (v *FieldValidator) Messages(messages Messages) *FieldValidator {
	v.messages = messages
	return v
}

// Check validates source against rules.
//
// Fields are visited in the order of rules and, within a field, rules run in
// declaration order. Every failing rule appends a message; processing never
// stops at the first failure. Values are trimmed before checking and rules
// other than required are skipped for empty values.
//
// The returned error is non-nil only when the rule set itself is invalid
// (ErrUnknownRule, ErrInvalidRuleArgument, ErrRecordStoreNotBound) or when
// the record store fails (ErrRecordStore). In both cases the collected
// messages must not be trusted.
func (v *FieldValidator) Check(ctx context.Context, source Source, rules FieldRules) (*FieldValidator, error) {
	log := logger.FromContext(ctx)

	v.errors = nil
	v.passed = false

	if err := v.verify(rules); err != nil {
		log.Err(err).Str("func", "*FieldValidator.Check").Msg("validation rules are misconfigured")
		return v, err
	}

	for _, fieldRule := range rules {
		value := strings.TrimSpace(source[fieldRule.Field])
		field := v.sanitizer.Clean(fieldRule.Field)

		for _, rule := range fieldRule.Rules {
			if _, ok := rule.(RequiredRule); ok {
				if value == "" {
					v.fail(fieldRule.Field, KindRequired, fmt.Sprintf("%s is required", field))
				}
				continue
			}

			if value == "" {
				continue
			}

			if err := v.apply(ctx, rule, fieldRule.Field, field, value, source); err != nil {
				log.Err(err).Str("func", "*FieldValidator.Check").Str("field", fieldRule.Field).Msg("record store lookup failed")
				return v, err
			}
		}
	}

	v.passed = len(v.errors) == 0

	log.Debug().Bool("passed", v.passed).Int("errors", len(v.errors)).Msg("form checked")

	return v, nil
}

// Errors returns the collected messages in the order rules failed.
func (v *FieldValidator) Errors() []string {
	return slices.Clone(v.errors)
}

// Passed reports whether the last Check produced no messages.
func (v *FieldValidator) Passed() bool {
	return v.passed
}

// apply runs a non-required rule against a non-empty value.
// name is the raw field name, field its sanitized form used in messages.
func (v *FieldValidator) apply(ctx context.Context, rule Rule, name, field, value string, source Source) error {
	switch r := rule.(type) {
	case MinRule:
		if length(value) < r.N {
			v.fail(name, KindMin, fmt.Sprintf("%s must be a minimum of %d characters.", field, r.N))
		}

	case MaxRule:
		if length(value) > r.N {
			v.fail(name, KindMax, fmt.Sprintf("%s must be a maximum of %d characters.", field, r.N))
		}

	case MatchesRule:
		if value != strings.TrimSpace(source[r.Field]) {
			v.fail(name, KindMatches, fmt.Sprintf("%s must match %s.", v.sanitizer.Clean(r.Field), field))
		}

	case AgreeRule:
		if value != "1" {
			v.fail(name, KindAgree, "You must agree to our terms and conditions in order to register.")
		}

	case UniqueRule:
		count, err := v.records.CountMatching(ctx, r.Collection, name, value)
		if err != nil {
			return fmt.Errorf("%w: %s on %s.%s: %w", ErrRecordStore, KindUnique, r.Collection, name, err)
		}
		if count > 0 {
			v.fail(name, KindUnique, fmt.Sprintf("The username/email %s already exists!", field))
		}

	case EmailRule:
		if !isEmail(value) {
			v.fail(name, KindEmail, fmt.Sprintf("%s is not a valid email.", v.sanitizer.Clean(value)))
		}

	case TimezoneRule:
		if !isTimezone(value) {
			v.fail(name, KindTimezone, fmt.Sprintf("The timezone %s is invalid.", field))
		}

	case IsActiveRule:
		collection := collectionOrDefault(r.Collection)
		status, found, err := v.records.FindOne(ctx, collection, name, value)
		if err != nil {
			return fmt.Errorf("%w: %s on %s.%s: %w", ErrRecordStore, KindIsActive, collection, name, err)
		}
		// a missing account is not this rule's concern
		if found && !status.Active {
			v.fail(name, KindIsActive, "That username is inactive. Have you validated your account or requested a password reset?")
		}

	case IsBannedRule:
		collection := collectionOrDefault(r.Collection)
		status, found, err := v.records.FindOne(ctx, collection, name, value)
		if err != nil {
			return fmt.Errorf("%w: %s on %s.%s: %w", ErrRecordStore, KindIsBanned, collection, name, err)
		}
		if found && status.Banned {
			v.fail(name, KindIsBanned, fmt.Sprintf("The username %s is banned.", field))
		}

	case AlphanumericRule:
		if !isAlphanumeric(value) {
			v.fail(name, KindAlphanumeric, fmt.Sprintf("%s must be alphanumeric.", field))
		}

	case NumericRule:
		if !isNumeric(value) {
			v.fail(name, KindNumeric, fmt.Sprintf("%s must be numeric.", field))
		}
	}

	return nil
}

// verify rejects rule sets that cannot be evaluated. It runs before any value
// is examined so a misconfigured form never yields partial results.
func (v *FieldValidator) verify(rules FieldRules) error {
	for _, fieldRule := range rules {
		if fieldRule.Field == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidRuleArgument)
		}

		for _, rule := range fieldRule.Rules {
			if err := v.verifyRule(fieldRule.Field, rule); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *FieldValidator) verifyRule(field string, rule Rule) error {
	switch r := rule.(type) {
	case RequiredRule, AgreeRule, EmailRule, TimezoneRule, AlphanumericRule, NumericRule:
		return nil

	case MinRule:
		if r.N < 0 {
			return fmt.Errorf("%w: %s on %q has negative bound %d", ErrInvalidRuleArgument, KindMin, field, r.N)
		}

	case MaxRule:
		if r.N < 0 {
			return fmt.Errorf("%w: %s on %q has negative bound %d", ErrInvalidRuleArgument, KindMax, field, r.N)
		}

	case MatchesRule:
		if r.Field == "" {
			return fmt.Errorf("%w: %s on %q needs a field to compare with", ErrInvalidRuleArgument, KindMatches, field)
		}

	case UniqueRule:
		if r.Collection == "" {
			return fmt.Errorf("%w: %s on %q needs a collection", ErrInvalidRuleArgument, KindUnique, field)
		}
		return v.requireRecords(field, r.Collection, KindUnique)

	case IsActiveRule:
		return v.requireRecords(field, collectionOrDefault(r.Collection), KindIsActive)

	case IsBannedRule:
		return v.requireRecords(field, collectionOrDefault(r.Collection), KindIsBanned)

	default:
		return fmt.Errorf("%w: %T on %q", ErrUnknownRule, rule, field)
	}

	return nil
}

// requireRecords checks that a store is bound and that collection and field
// can name a table and a column.
func (v *FieldValidator) requireRecords(field, collection string, kind Kind) error {
	if !isIdentifier(collection) {
		return fmt.Errorf("%w: %s on %q has invalid collection %q", ErrInvalidRuleArgument, kind, field, collection)
	}
	if !isIdentifier(field) {
		return fmt.Errorf("%w: %s on %q needs a field name usable as a record attribute", ErrInvalidRuleArgument, kind, field)
	}
	if v.records == nil {
		return fmt.Errorf("%w: %s on %q", ErrRecordStoreNotBound, kind, field)
	}
	return nil
}

func (v *FieldValidator) fail(field string, kind Kind, fallback string) {
	v.errors = append(v.errors, v.messages.resolve(field, kind, fallback))
}
