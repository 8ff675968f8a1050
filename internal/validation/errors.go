package validation

import "errors"

// Configuration errors. They signal a defect in the caller's rule set and are
// returned by Check before any value is examined.
var (
	// ErrUnknownRule is returned for a rule that is not part of the vocabulary.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidRuleArgument is returned when a rule argument is malformed,
	// e.g. a negative length bound or an empty field reference.
	ErrInvalidRuleArgument = errors.New("invalid validation rule argument")

	// ErrRecordStoreNotBound is returned when unique, isactive or isbanned
	// is used by a validator constructed without a RecordStore.
	ErrRecordStoreNotBound = errors.New("record store is not bound")
)

// ErrRecordStore wraps failures reported by the RecordStore during Check.
var ErrRecordStore = errors.New("record store lookup failed")
