package llm

import "errors"

// ErrEmptyResponse indicates the backend answered without any completion choices.
var ErrEmptyResponse = errors.New("completion response has no choices")
