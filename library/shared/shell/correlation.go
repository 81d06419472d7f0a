package shell

import (
	"context"

	"github.com/google/uuid"
)

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying the given correlation id.
func WithCorrelationID(ctx context.Context, correlationID uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// CorrelationIDFrom returns the correlation id carried by ctx, if any.
func CorrelationIDFrom(ctx context.Context) (uuid.UUID, bool) {
	correlationID, ok := ctx.Value(correlationIDKey{}).(uuid.UUID)

	return correlationID, ok
}

// EnsureCorrelationID returns ctx unchanged if it already carries a correlation id,
// otherwise a context with a fresh random one.
func EnsureCorrelationID(ctx context.Context) (context.Context, uuid.UUID) {
	if correlationID, ok := CorrelationIDFrom(ctx); ok {
		return ctx, correlationID
	}

	correlationID := uuid.New()

	return WithCorrelationID(ctx, correlationID), correlationID
}
