package inquiry

import "errors"

var (
	ErrEmptyMessage     = errors.New("message is required")
	ErrPropertyRequired = errors.New("property id is required")
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
)
