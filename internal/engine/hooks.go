package engine

import (
	"context"
	"time"
)

// Hook receives notifications as a planning run progresses.
type Hook interface {
	OnStepStart(ctx context.Context, st *State)
	OnModelResponse(ctx context.Context, st *State, resp LLMResponse, cost float64)
	OnToolCall(ctx context.Context, st *State, action ParsedAction)
	OnObservation(ctx context.Context, st *State, observation string)
	OnRetryAttempt(ctx context.Context, st *State, attempt int, maxAttempts int, delay time.Duration, err error)
	OnBudgetExceeded(ctx context.Context, st *State, limit float64)
	OnDone(ctx context.Context, st *State)
}

// NopHook lets you implement only the hooks you need.
type NopHook struct{}

func (NopHook) OnStepStart(context.Context, *State)                                    {}
func (NopHook) OnModelResponse(context.Context, *State, LLMResponse, float64)          {}
func (NopHook) OnToolCall(context.Context, *State, ParsedAction)                       {}
func (NopHook) OnObservation(context.Context, *State, string)                          {}
func (NopHook) OnRetryAttempt(context.Context, *State, int, int, time.Duration, error) {}
func (NopHook) OnBudgetExceeded(context.Context, *State, float64)                      {}
func (NopHook) OnDone(context.Context, *State)                                         {}

// Hooks fans out to every registered hook.
type Hooks []Hook

func (h Hooks) OnStepStart(ctx context.Context, st *State) {
	for _, hook := range h {
		hook.OnStepStart(ctx, st)
	}
}

func (h Hooks) OnModelResponse(ctx context.Context, st *State, resp LLMResponse, cost float64) {
	for _, hook := range h {
		hook.OnModelResponse(ctx, st, resp, cost)
	}
}

func (h Hooks) OnToolCall(ctx context.Context, st *State, action ParsedAction) {
	for _, hook := range h {
		hook.OnToolCall(ctx, st, action)
	}
}

func (h Hooks) OnObservation(ctx context.Context, st *State, observation string) {
	for _, hook := range h {
		hook.OnObservation(ctx, st, observation)
	}
}

func (h Hooks) OnRetryAttempt(ctx context.Context, st *State, attempt, maxAttempts int, delay time.Duration, err error) {
	for _, hook := range h {
		hook.OnRetryAttempt(ctx, st, attempt, maxAttempts, delay, err)
	}
}

func (h Hooks) OnBudgetExceeded(ctx context.Context, st *State, limit float64) {
	for _, hook := range h {
		hook.OnBudgetExceeded(ctx, st, limit)
	}
}

func (h Hooks) OnDone(ctx context.Context, st *State) {
	for _, hook := range h {
		hook.OnDone(ctx, st)
	}
}
