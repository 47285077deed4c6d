package engine

import (
	"context"
	"log"
	"time"
)

// LoggerHook logs run progress through a standard logger.
type LoggerHook struct{ L *log.Logger }

func (h LoggerHook) OnStepStart(_ context.Context, st *State) {
	h.L.Printf("run=%s step=%d phase=%s", st.RunID, st.Step, st.Phase)
}

func (h LoggerHook) OnModelResponse(_ context.Context, st *State, r LLMResponse, cost float64) {
	h.L.Printf("tokens: prompt=%d completion=%d cost=%.4f (run total: %d tokens, %.4f)",
		r.Usage.Prompt, r.Usage.Completion, cost, st.Account.Totals.Total(), st.Account.Cost)
}

func (h LoggerHook) OnToolCall(_ context.Context, _ *State, action ParsedAction) {
	h.L.Printf("action: %s input=%q", action.Name, action.Input)
}

func (h LoggerHook) OnObservation(_ context.Context, _ *State, observation string) {
	preview := observation
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	h.L.Printf("observation: %s", preview)
}

func (h LoggerHook) OnRetryAttempt(_ context.Context, _ *State, attempt, maxAttempts int, delay time.Duration, err error) {
	h.L.Printf("retry attempt=%d/%d delay=%v error=%v", attempt, maxAttempts, delay, err)
}

func (h LoggerHook) OnBudgetExceeded(_ context.Context, st *State, limit float64) {
	h.L.Printf("budget exceeded: limit=%.4f spent=%.4f", limit, st.Account.Cost)
}

func (h LoggerHook) OnDone(_ context.Context, st *State) {
	h.L.Printf("done: run=%s steps=%d tokens=%d cost=%.4f",
		st.RunID, st.Step, st.Account.Totals.Total(), st.Account.Cost)
}
