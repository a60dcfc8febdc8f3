package workflow

import "errors"

var (
	ErrTaskNotFound        = errors.New("follow-up event not found")
	ErrInvalidStatus       = errors.New("invalid follow-up event status")
	ErrInvalidPriority     = errors.New("invalid follow-up event priority")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMissingTransaction  = errors.New("transaction_id is required")
	ErrMissingInspectors   = errors.New("at least one inspector is required")
)
