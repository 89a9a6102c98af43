package metrics

import "context"

// Outcomes recorded for each catalog operation
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Counter reports how many books the catalog currently holds.
type Counter interface {
	CountBooks(ctx context.Context) (int64, error)
}

// CounterFunc adapts a function to the Counter interface
type CounterFunc func(ctx context.Context) (int64, error)

func (f CounterFunc) CountBooks(ctx context.Context) (int64, error) {
	return f(ctx)
}
