package utils

// ValidationError marks malformed input or a forbidden state transition.
// Controllers report it as 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError covers both "does not exist" and "not owned by the caller".
// The two cases are deliberately indistinguishable so that responses never
// reveal whether another user's record exists. Controllers report it as 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}
