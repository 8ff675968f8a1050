package validation

import (
	"bufio"
	_ "embed"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// tags is shared by all validators; validator.Validate is safe for concurrent use.
var tags = validator.New()

// numericPattern accepts optionally signed integers and decimals with an
// optional exponent ("42", "-1.5", ".5", "3.", "1e10").
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// identifierPattern matches collection and field names the record store
// can address.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

//go:embed timezones.txt
var timezoneList string

// timezones is the canonical IANA identifier set. Links such as US/Eastern
// or Europe/Kiev and the posix/, right/ and Etc/ trees are not members.
var timezones = parseTimezones(timezoneList)

func parseTimezones(list string) map[string]struct{} {
	set := make(map[string]struct{}, 420)
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set[line] = struct{}{}
	}
	return set
}

func length(value string) int {
	return utf8.RuneCountInString(value)
}

func isEmail(value string) bool {
	if strings.ContainsFunc(value, unicode.IsSpace) {
		return false
	}

	at := strings.LastIndexByte(value, '@')
	if at <= 0 || !strings.Contains(value[at+1:], ".") {
		return false
	}

	return tags.Var(value, "email") == nil
}

func isAlphanumeric(value string) bool {
	return tags.Var(value, "alphanum") == nil
}

func isIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func isNumeric(value string) bool {
	return numericPattern.MatchString(value)
}

// isTimezone reports whether value is a canonical IANA zone identifier.
// The check is case sensitive and independent of the host zoneinfo files.
func isTimezone(value string) bool {
	_, ok := timezones[value]
	return ok
}
