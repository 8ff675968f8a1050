package forms

import "errors"

var (
	// ErrMalformedDefinition is returned for a definitions document that
	// cannot be decoded or has structural defects such as duplicate fields.
	ErrMalformedDefinition = errors.New("malformed form definition")

	// ErrReadingDefinitions is returned when the definitions file cannot be read.
	ErrReadingDefinitions = errors.New("error reading form definitions")
)
