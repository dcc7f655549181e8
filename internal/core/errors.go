package core

import "fmt"

// ErrNotFound reports a lookup miss for a stored record.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports a rejected input field. It blocks only the save
// action that produced it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// MissingUpstreamError reports entry into a stage whose prerequisite store is
// empty. Callers surface it as a full-panel message pointing back to the
// prerequisite stage; nothing is partially rendered.
type MissingUpstreamError struct {
	Stage    string
	Requires string
}

func (e MissingUpstreamError) Error() string {
	return fmt.Sprintf("%s requires data from %s", e.Stage, e.Requires)
}
