package paymentgateway

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrGatewayPanicked is returned by Call when the gateway implementation panics.
var ErrGatewayPanicked = errors.New("payment gateway panicked")

// Call invokes a gateway operation bounded by timeout. A panic inside fn is recovered
// and returned as ErrGatewayPanicked, an expired or canceled context as the context's error,
// even if fn itself ignores the context.
func Call[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan answer[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- answer[T]{err: fmt.Errorf("%w: %v", ErrGatewayPanicked, r)}
			}
		}()

		value, err := fn(ctx)
		done <- answer[T]{value: value, err: err}
	}()

	return await(ctx, done)
}

type answer[T any] struct {
	value T
	err   error
}

func (a answer[T]) result() (T, error) {
	if a.err != nil {
		var zero T
		return zero, a.err
	}

	return a.value, nil
}

// await returns the gateway's answer or the context's error, whichever comes first.
// An answer that is already there when the context ends still wins, so an approved
// payment is never reported as timed out.
func await[T any](ctx context.Context, done <-chan answer[T]) (T, error) {
	select {
	case a := <-done:
		return a.result()
	case <-ctx.Done():
		select {
		case a := <-done:
			return a.result()
		default:
			var zero T
			return zero, ctx.Err()
		}
	}
}
