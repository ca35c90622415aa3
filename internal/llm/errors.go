package llm

import "fmt"

// GatewayError reports a failed generation call. It covers provider errors,
// unusable responses, and misconfiguration.
type GatewayError struct {
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// GatewayTimeout reports a generation call that exceeded its deadline.
// Unlike other gateway failures, a timeout is safe to retry.
type GatewayTimeout struct {
	Model string
	Cause error
}

func (e *GatewayTimeout) Error() string {
	return fmt.Sprintf("generation timed out for model %s: %v", e.Model, e.Cause)
}

func (e *GatewayTimeout) Unwrap() error {
	return e.Cause
}
