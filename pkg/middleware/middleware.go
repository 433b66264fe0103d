// Package middleware provides the HTTP middleware stack applied to modules:
// request correlation and logging, panic recovery and CORS.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps a handler.
type Func = func(http.Handler) http.Handler

// System is an ordered middleware stack. The first Func added is the
// outermost wrapper.
type System interface {
	Use(fns ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack []Func

func New() System {
	return &stack{}
}

func (s *stack) Use(fns ...Func) {
	*s = append(*s, fns...)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, fn := range slices.Backward(*s) {
		handler = fn(handler)
	}
	return handler
}
