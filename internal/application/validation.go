package application

import "regexp"

// ValidationError describes a rejected field on a create or update request.
// The message is safe to surface to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// emailPattern accepts the basic local@domain.tld shape. Deliverability is
// not checked.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
