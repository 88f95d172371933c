package invoice

import (
	"fmt"
	"strings"
)

// ValidationError reports every missing required field of a request in a
// single message, not just the first one found.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

// DeliveryError wraps a failure in id generation, rendering, or the primary
// email send. The api package maps it to a 500.
type DeliveryError struct {
	Stage string // "render" | "send"
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("invoice delivery failed at %s: %v", e.Stage, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
