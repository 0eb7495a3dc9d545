package validation

import "fmt"

// DecodeError represents a failure to decode a raw document before any
// record-level validation could run.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// ContractError represents a contract that could not be compiled to a schema.
type ContractError struct {
	Section string
	Cause   error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract error: %s: %v", e.Section, e.Cause)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}
