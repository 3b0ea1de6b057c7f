package form

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned by Grid.Find when the fieldset segment of
	// a name is not registered.
	ErrInvalidArgument = errors.New("form: invalid argument")
	// ErrNotFound is returned by Grid.Find when the fieldset exists but holds
	// no control with the requested name.
	ErrNotFound = errors.New("form: control not found")
)

// UnavailableError reports a Find on a name whose fieldset is unknown.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Name [%s] is not available.", e.Name)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *UnavailableError) Unwrap() error {
	return ErrInvalidArgument
}
