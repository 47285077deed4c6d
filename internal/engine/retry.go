package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy defines retry behavior for model calls.
type RetryPolicy struct {
	MaxRetries   int           // maximum retry attempts (0 = no retries)
	InitialDelay time.Duration // delay before the first retry
	MaxDelay     time.Duration // delay cap
	Multiplier   float64       // exponential backoff multiplier
	Jitter       bool          // add 0-20% random jitter to delays
}

// DefaultRetryPolicy returns the policy used when none is configured.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// retryChat calls the model with bounded retries. Non-retryable errors are
// returned immediately; exhausting the policy yields a RetryExhaustedError.
func retryChat(
	ctx context.Context,
	policy RetryPolicy,
	llm LLMClient,
	model string,
	messages []ChatMessage,
	opts ChatOptions,
	onRetry func(attempt int, delay time.Duration, err error),
) (LLMResponse, error) {
	attempt := 0
	for {
		resp, err := llm.Chat(ctx, model, messages, opts)
		if err == nil {
			return resp, nil
		}
		if ClassifyTransportError(err) == RetryClassNonRetryable {
			return LLMResponse{}, err
		}
		if attempt >= policy.MaxRetries {
			return LLMResponse{}, &RetryExhaustedError{Err: err, Attempts: attempt}
		}

		delay := backoffDelay(policy, attempt)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}

		select {
		case <-ctx.Done():
			return LLMResponse{}, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(delay):
		}
		attempt++
	}
}

func backoffDelay(policy RetryPolicy, attempt int) time.Duration {
	delay := float64(policy.InitialDelay) * math.Pow(policy.Multiplier, float64(attempt))
	if delay > float64(policy.MaxDelay) {
		delay = float64(policy.MaxDelay)
	}
	if policy.Jitter {
		delay += rand.Float64() * 0.2 * delay
	}
	return time.Duration(delay)
}
