package tipping

import "fmt"

// ValidationError is returned before any state is touched. Reason is meant to be
// shown to the user as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

type InvalidTransitionError struct {
	From  Status
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot apply %q to a tip in status %q", e.Event, e.From)
}
