package submission

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrFormNotFound         = errors.New("form not found")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrNoFile               = errors.New("no file provided")
)

// ValidationError carries per-field messages keyed by JSON field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}
