package resume

import (
	"errors"
	"fmt"
)

// ErrBuildInProgress is returned when a build lock for the job is already held
var ErrBuildInProgress = errors.New("a resume build for this job is already in progress")

// InputError is a problem with what the caller supplied
type InputError struct {
	Message string
	Detail  string
}

func (e *InputError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NotFoundError reports a missing job, profile or resume
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
