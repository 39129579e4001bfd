package contract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema matches every *SchemaError
var ErrSchema = errors.New("generated output violates contract")

type SchemaErrorKind string

const (
	InvalidJSON     SchemaErrorKind = "invalid_json"
	SchemaViolation SchemaErrorKind = "schema_violation"
)

// SchemaError reports generator output that could not be accepted. Raw is the
// sanitized candidate exactly as received.
type SchemaError struct {
	Kind       SchemaErrorKind
	Contract   string
	Raw        string
	Detail     string
	Violations []string
}

func (e *SchemaError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s %s: %s", e.Contract, e.Kind, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("%s %s: %s", e.Contract, e.Kind, e.Detail)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
