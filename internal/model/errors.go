package model

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist or is not
	// visible to the requesting owner.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a signup reuses a registered email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnknownEmail is returned by login when no user has the email.
	ErrUnknownEmail = errors.New("email is not registered")
	// ErrInvalidPassword is returned by login when the password does not match.
	ErrInvalidPassword = errors.New("password does not match")
	// ErrUnauthenticated is returned when no valid session resolves to a user.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidToken is returned for session tokens that fail verification.
	ErrInvalidToken = errors.New("invalid session token")
)

// FieldErrors carries validation failures keyed by input name. A nil or
// empty map means the input passed validation.
type FieldErrors map[string][]string

// Add appends a message to the named field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Error implements the error interface so FieldErrors can travel through
// ordinary error returns.
func (f FieldErrors) Error() string {
	return "validation failed"
}

// AsFieldErrors unwraps err into FieldErrors if it carries any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
