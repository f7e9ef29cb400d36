package ledger

import "fmt"

// TransactionError indicates a transaction field failed validation. Value
// carries the offending input, or nil when the violation is a missing value.
type TransactionError struct {
	Message string
	Value   any
}

// NewTransactionError constructs a transaction validation failure.
func NewTransactionError(message string, value any) error {
	return &TransactionError{Message: message, Value: value}
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: offending value [%v]", e.Message, e.Value)
}

// BlockError indicates a block field failed validation. Value carries the
// offending input, or nil when the violation is a missing value.
type BlockError struct {
	Message string
	Value   any
}

// NewBlockError constructs a block validation failure.
func NewBlockError(message string, value any) error {
	return &BlockError{Message: message, Value: value}
}

// Error implements the error interface.
func (e *BlockError) Error() string {
	return fmt.Sprintf("%s: offending value [%v]", e.Message, e.Value)
}

// ChainError indicates chain metadata failed validation.
type ChainError struct {
	Message string
	Value   any
}

// NewChainError constructs a chain validation failure.
func NewChainError(message string, value any) error {
	return &ChainError{Message: message, Value: value}
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	return fmt.Sprintf("%s: offending value [%v]", e.Message, e.Value)
}
