// Package sanitizer escapes and purifies text before it reaches HTML output.
//
// Clean escapes markup-significant characters and is what the field validator
// applies to field names and echoed values. Purify strips any markup with a
// strict bluemonday policy and is used when messages are rendered as an
// HTML fragment.
package sanitizer

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New returns a Sanitizer backed by bluemonday's strict policy.
func New() *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Clean escapes <, >, &, ' and " so that text can be embedded in HTML.
func (s *Sanitizer) Clean(text string) string {
	return html.EscapeString(text)
}

// Purify removes all tags from text and escapes what remains. Text that was
// already escaped by Clean comes out unchanged.
func (s *Sanitizer) Purify(text string) string {
	return s.policy.Sanitize(text)
}
