package models

// ValidationError is returned when a field violates a storage constraint.
// Handlers map it to a 400 response; everything else is a server error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}
