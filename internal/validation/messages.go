package validation

// Message is a caller supplied replacement for the default error text of a
// field. It is either generic (used for every failing rule of the field) or
// keyed by rule kind.
type Message struct {
	text    string
	byRule  map[Kind]string
	perRule bool
}

// Generic returns a Message used for any failing rule of the field.
func Generic(text string) Message {
	return Message{text: text}
}

// PerRule returns a Message with a specific text per rule kind. Rules that are
// not listed keep their default text.
func PerRule(byRule map[Kind]string) Message {
	copied := make(map[Kind]string, len(byRule))
	for kind, text := range byRule {
		copied[kind] = text
	}
	return Message{byRule: copied, perRule: true}
}

// Messages maps field names to their overrides.
type Messages map[string]Message

// resolve picks the text reported for a failing rule:
//   - no entry for field: fallback;
//   - generic entry: its text for any rule;
//   - per-rule entry containing kind: that text;
//   - per-rule entry without kind: fallback.
func (m Messages) resolve(field string, kind Kind, fallback string) string {
	msg, ok := m[field]
	if !ok {
		return fallback
	}

	if !msg.perRule {
		return msg.text
	}

	if text, ok := msg.byRule[kind]; ok {
		return text
	}

	return fallback
}
