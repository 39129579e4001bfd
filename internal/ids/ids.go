// Package ids parses the identifiers that arrive in request paths. Job and
// application ids are accepted either as bare decimals ("12") or with a kind
// prefix ("job-12", "app_12").
package ids

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidIDFormat matches every parse failure
var ErrInvalidIDFormat = errors.New("invalid id format")

// InvalidIDError reports the offending input
type InvalidIDError struct {
	Input  string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %q: %s", e.Input, e.Reason)
}

func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidIDFormat
}

// ID is a parsed identifier. Kind is empty for bare numbers.
type ID struct {
	Kind  string
	Value int64
}

func (id ID) String() string {
	if id.Kind == "" {
		return strconv.FormatInt(id.Value, 10)
	}
	return id.Kind + "-" + strconv.FormatInt(id.Value, 10)
}

var prefixedPattern = regexp.MustCompile(`^([a-z]+)[-_]([0-9]+)$`)

// known kind prefixes and their canonical names
var kinds = map[string]string{
	"job":         "job",
	"app":         "application",
	"application": "application",
}

// Parse parses a bare positive decimal or a <kind>-<n> / <kind>_<n> form
func Parse(s string) (ID, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return ID{}, &InvalidIDError{Input: s, Reason: "empty"}
	}

	kind := ""
	digits := raw
	if m := prefixedPattern.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		canonical, ok := kinds[m[1]]
		if !ok {
			return ID{}, &InvalidIDError{Input: s, Reason: fmt.Sprintf("unknown kind %q", m[1])}
		}
		kind = canonical
		digits = m[2]
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return ID{}, &InvalidIDError{Input: s, Reason: "not a number"}
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return ID{}, &InvalidIDError{Input: s, Reason: "out of range"}
	}
	if value <= 0 {
		return ID{}, &InvalidIDError{Input: s, Reason: "must be positive"}
	}

	return ID{Kind: kind, Value: value}, nil
}

// ParseValue is Parse for callers that only need the numeric part
func ParseValue(s string) (int64, error) {
	id, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return id.Value, nil
}
