package api

import (
	"github.com/JaimeStill/estimator/internal/disposition"
	"github.com/JaimeStill/estimator/internal/extraction"
	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/retryqueue"
	"github.com/JaimeStill/estimator/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Orders     orders.System
	Extractor  *extraction.Extractor
	Resolver   *disposition.Resolver
	Reviews    *reviews.Store
	RetryQueue *retryqueue.Queue
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	ordersSystem := orders.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	extractor := extraction.New(runtime.Completer, runtime.Conversation, runtime.Logger)
	queue := retryqueue.New(runtime.Logger)

	runtime.Lifecycle.OnShutdown("retry-queue", func() {
		<-runtime.Lifecycle.Context().Done()
		if n := len(queue.List()); n > 0 {
			runtime.Logger.Warn("undelivered dispositions left in retry queue", "count", n)
		}
	})

	return &Domain{
		Orders:     ordersSystem,
		Extractor:  extractor,
		Resolver:   disposition.New(extractor, ordersSystem, runtime.Notifier, runtime.Logger),
		Reviews:    reviews.New(runtime.Logger),
		RetryQueue: queue,
	}
}
