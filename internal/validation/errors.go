package validation

import "errors"

// ErrInvalidRequest indicates a malformed validation request body.
var ErrInvalidRequest = errors.New("invalid validation request")
