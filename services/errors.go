package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the use-case layer. Handlers map these onto HTTP
// statuses; nothing below the handlers retries them.
var (
	ErrChildNotFound  = errors.New("child not found")
	ErrGardenNotFound = errors.New("growth garden not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// ValidationError names the first missing request field. The caller has to
// correct and resend.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
