package llm

import "errors"

var (
	// ErrDisabled indicates the client was called while LLM support is off.
	ErrDisabled = errors.New("llm is disabled")

	// ErrUnavailable indicates the chat endpoint is unreachable.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response body could not be decoded
	// or carried no choices.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
