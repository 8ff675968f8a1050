package validation

import (
	"net/url"
)

// Kind names a rule. The value is the tag used in form definitions and the
// key used for per-rule message overrides.
type Kind string

const (
	KindRequired     Kind = "required"
	KindMin          Kind = "min"
	KindMax          Kind = "max"
	KindMatches      Kind = "matches"
	KindAgree        Kind = "agree"
	KindUnique       Kind = "unique"
	KindEmail        Kind = "email"
	KindTimezone     Kind = "timezone"
	KindIsActive     Kind = "isactive"
	KindIsBanned     Kind = "isbanned"
	KindAlphanumeric Kind = "alphanumeric"
	KindNumeric      Kind = "numeric"
)

// DefaultCollection is the collection consulted by isactive and isbanned
// when none is given.
const DefaultCollection = "users"

var kinds = map[Kind]struct{}{
	KindRequired:     {},
	KindMin:          {},
	KindMax:          {},
	KindMatches:      {},
	KindAgree:        {},
	KindUnique:       {},
	KindEmail:        {},
	KindTimezone:     {},
	KindIsActive:     {},
	KindIsBanned:     {},
	KindAlphanumeric: {},
	KindNumeric:      {},
}

// Valid reports whether k belongs to the rule vocabulary.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Rule is a single check applied to one field value.
// The set of implementations is closed: only the variants below satisfy it.
type Rule interface {
	Kind() Kind
	isRule()
}

type (
	// RequiredRule fails when the trimmed value is empty.
	RequiredRule struct{}

	// MinRule fails when the value has fewer than N characters.
	MinRule struct{ N int }

	// MaxRule fails when the value has more than N characters.
	MaxRule struct{ N int }

	// MatchesRule fails when the value differs from the value of Field.
	MatchesRule struct{ Field string }

	// AgreeRule fails unless the value is "1" (checked checkbox).
	AgreeRule struct{}

	// UniqueRule fails when Collection already holds a record with the same value.
	UniqueRule struct{ Collection string }

	// EmailRule fails when the value is not an email address.
	EmailRule struct{}

	// TimezoneRule fails when the value is not a canonical IANA timezone identifier.
	TimezoneRule struct{}

	// IsActiveRule fails when the matching record exists and is not active.
	IsActiveRule struct{ Collection string }

	// IsBannedRule fails when the matching record exists and is banned.
	IsBannedRule struct{ Collection string }

	// AlphanumericRule fails unless every character is an ASCII letter or digit.
	AlphanumericRule struct{}

	// NumericRule fails unless the value is an integer or decimal number.
	NumericRule struct{}
)

func (RequiredRule) Kind() Kind     { return KindRequired }
func (MinRule) Kind() Kind          { return KindMin }
func (MaxRule) Kind() Kind          { return KindMax }
func (MatchesRule) Kind() Kind      { return KindMatches }
func (AgreeRule) Kind() Kind        { return KindAgree }
func (UniqueRule) Kind() Kind       { return KindUnique }
func (EmailRule) Kind() Kind        { return KindEmail }
func (TimezoneRule) Kind() Kind     { return KindTimezone }
func (IsActiveRule) Kind() Kind     { return KindIsActive }
func (IsBannedRule) Kind() Kind     { return KindIsBanned }
func (AlphanumericRule) Kind() Kind { return KindAlphanumeric }
func (NumericRule) Kind() Kind      { return KindNumeric }

func (RequiredRule) isRule()     {}
func (MinRule) isRule()          {}
func (MaxRule) isRule()          {}
func (MatchesRule) isRule()      {}
func (AgreeRule) isRule()        {}
func (UniqueRule) isRule()       {}
func (EmailRule) isRule()        {}
func (TimezoneRule) isRule()     {}
func (IsActiveRule) isRule()     {}
func (IsBannedRule) isRule()     {}
func (AlphanumericRule) isRule() {}
func (NumericRule) isRule()      {}

func Required() Rule                { return RequiredRule{} }
func Min(n int) Rule                { return MinRule{N: n} }
func Max(n int) Rule                { return MaxRule{N: n} }
func Matches(field string) Rule     { return MatchesRule{Field: field} }
func Agree() Rule                   { return AgreeRule{} }
func Unique(collection string) Rule { return UniqueRule{Collection: collection} }
func Email() Rule                   { return EmailRule{} }
func Timezone() Rule                { return TimezoneRule{} }
func Alphanumeric() Rule            { return AlphanumericRule{} }
func Numeric() Rule                 { return NumericRule{} }

// IsActive checks the account state in collection, DefaultCollection when empty.
func IsActive(collection string) Rule { return IsActiveRule{Collection: collection} }

// IsBanned checks the ban flag in collection, DefaultCollection when empty.
func IsBanned(collection string) Rule { return IsBannedRule{Collection: collection} }

// FieldRule binds an ordered list of rules to one input field.
type FieldRule struct {
	Field string
	Rules []Rule
}

// FieldRules lists fields in the order they are validated.
type FieldRules []FieldRule

// Field is shorthand for a FieldRule literal.
func Field(name string, rules ...Rule) FieldRule {
	return FieldRule{Field: name, Rules: rules}
}

// Source holds the submitted raw values keyed by field name.
type Source map[string]string

// SourceFromValues converts submitted form values, keeping the first value of
// every key.
func SourceFromValues(values url.Values) Source {
	source := make(Source, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			source[key] = vals[0]
		}
	}
	return source
}

func collectionOrDefault(collection string) string {
	if collection == "" {
		return DefaultCollection
	}
	return collection
}
