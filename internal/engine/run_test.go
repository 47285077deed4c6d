package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// scriptedLLM replays canned responses in order and records every call's
// message history.
type scriptedLLM struct {
	responses []LLMResponse
	errs      []error
	calls     [][]ChatMessage
}

func (s *scriptedLLM) Chat(_ context.Context, _ string, messages []ChatMessage, _ ChatOptions) (LLMResponse, error) {
	i := len(s.calls)
	s.calls = append(s.calls, append([]ChatMessage(nil), messages...))
	if i < len(s.errs) && s.errs[i] != nil {
		return LLMResponse{}, s.errs[i]
	}
	if i >= len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[i], nil
}

func loopingRegistry() ToolRegistry {
	return ToolRegistry{
		"noop": {
			Name:     "noop",
			Strategy: ArgNone,
			Fn: func(context.Context, map[string]string) (any, error) {
				return "ok", nil
			},
		},
	}
}

func flashUsage(prompt, completion int) Usage {
	return Usage{Prompt: prompt, Completion: completion}
}

func newTestPlanner(llm LLMClient, cfg PlannerConfig) *Planner {
	if cfg.Model == "" {
		cfg.Model = "qwen-flash"
	}
	if cfg.BudgetLimit == 0 {
		cfg.BudgetLimit = 1.0
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = "You are a travel planner."
	}
	return NewPlanner(llm, loopingRegistry(), cfg)
}

func TestPlanFinalAnswerOnFirstTurn(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "Visit Sensoji Temple in the morning.", Usage: flashUsage(100, 50)},
	}}
	p := newTestPlanner(llm, PlannerConfig{})

	got, err := p.Plan(context.Background(), "one day in Asakusa")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 1 {
		t.Fatalf("model calls = %d, want 1", len(llm.calls))
	}
	if !strings.HasPrefix(got, "Visit Sensoji Temple") {
		t.Errorf("answer lost the model text: %q", got)
	}
	if !strings.Contains(got, "Cost summary:") {
		t.Errorf("answer missing cost disclosure: %q", got)
	}
	if !strings.Contains(got, "150 tokens") {
		t.Errorf("disclosure missing turn token count: %q", got)
	}
}

func TestPlanSeedsSystemAndUserMessages(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{{Text: "done"}}}
	p := newTestPlanner(llm, PlannerConfig{SystemPrompt: "sys prompt"})

	if _, err := p.Plan(context.Background(), "the query"); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	first := llm.calls[0]
	if len(first) != 2 {
		t.Fatalf("seed history length = %d, want 2", len(first))
	}
	if first[0].Role != RoleSystem || first[0].Content != "sys prompt" {
		t.Errorf("first message = %+v", first[0])
	}
	if first[1].Role != RoleUser || first[1].Content != "the query" {
		t.Errorf("second message = %+v", first[1])
	}
}

func TestPlanDispatchesToolAndFeedsObservation(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "Thought: check.\nAction: noop\nAction Input:", Usage: flashUsage(10, 10)},
		{Text: "All done.", Usage: flashUsage(10, 10)},
	}}
	p := newTestPlanner(llm, PlannerConfig{})

	if _, err := p.Plan(context.Background(), "q"); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("model calls = %d, want 2", len(llm.calls))
	}
	second := llm.calls[1]
	last := second[len(second)-1]
	if last.Role != RoleUser {
		t.Errorf("observation role = %s, want user", last.Role)
	}
	if !strings.HasPrefix(last.Content, ObservationPrefix) {
		t.Errorf("observation missing prefix: %q", last.Content)
	}
	if !strings.Contains(last.Content, `"ok"`) {
		t.Errorf("observation lost tool result: %q", last.Content)
	}
}

func TestPlanUnknownActionBecomesObservation(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "Action: teleport\nAction Input: \"Mars\"", Usage: flashUsage(10, 10)},
		{Text: "Staying on Earth.", Usage: flashUsage(10, 10)},
	}}
	p := newTestPlanner(llm, PlannerConfig{})

	got, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	second := llm.calls[1]
	last := second[len(second)-1].Content
	if !strings.Contains(last, "unknown action: teleport") {
		t.Errorf("observation = %q", last)
	}
	if !strings.HasPrefix(got, "Staying on Earth.") {
		t.Errorf("answer = %q", got)
	}
}

func TestPlanBudgetAlreadyExhaustedMakesNoCalls(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{{Text: "never"}}}
	p := newTestPlanner(llm, PlannerConfig{BudgetLimit: 0.5})
	p.account.Cost = 0.7123

	got, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 0 {
		t.Fatalf("model calls = %d, want 0", len(llm.calls))
	}
	if !strings.Contains(got, "0.7123") {
		t.Errorf("budget message missing current cost: %q", got)
	}
	if !strings.Contains(got, "0.5000") {
		t.Errorf("budget message missing ceiling: %q", got)
	}
}

func TestPlanBudgetAllowsOneOverspendingCall(t *testing.T) {
	// qwen-max at a million completion tokens costs 120, blowing a 0.01
	// budget in a single call. The triggering call still completes and is
	// booked; only the next turn stops.
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "Action: noop\nAction Input:", Usage: flashUsage(0, 1_000_000)},
		{Text: "never reached"},
	}}
	p := newTestPlanner(llm, PlannerConfig{Model: "qwen-max", BudgetLimit: 0.01})

	got, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 1 {
		t.Fatalf("model calls = %d, want 1", len(llm.calls))
	}
	if !strings.Contains(got, "Budget limit reached") {
		t.Errorf("expected budget message, got %q", got)
	}
	if acct := p.Account(); acct.Cost < 119 {
		t.Errorf("triggering call not booked, cost = %v", acct.Cost)
	}
}

func TestPlanIterationCap(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "Action: noop\nAction Input:", Usage: flashUsage(1, 1)},
	}}
	p := newTestPlanner(llm, PlannerConfig{MaxIterations: 4, BudgetLimit: 100})

	got, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 4 {
		t.Fatalf("model calls = %d, want exactly 4", len(llm.calls))
	}
	if !strings.Contains(got, "within 4 steps") {
		t.Errorf("iteration message = %q", got)
	}
	if !strings.Contains(got, "Current cost:") {
		t.Errorf("iteration message missing spend: %q", got)
	}
}

func TestPlanAccountPersistsAcrossRuns(t *testing.T) {
	llm := &scriptedLLM{responses: []LLMResponse{
		{Text: "first answer", Usage: flashUsage(1000, 1000)},
	}}
	p := newTestPlanner(llm, PlannerConfig{})

	if _, err := p.Plan(context.Background(), "first"); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	after1 := p.Account()
	if _, err := p.Plan(context.Background(), "second"); err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	after2 := p.Account()
	if after2.Cost <= after1.Cost {
		t.Errorf("cost did not accumulate: %v then %v", after1.Cost, after2.Cost)
	}
	if after2.Totals.Total() != 2*after1.Totals.Total() {
		t.Errorf("token totals = %d, want %d", after2.Totals.Total(), 2*after1.Totals.Total())
	}
}

func TestPlanNonRetryableModelErrorSurfaces(t *testing.T) {
	authErr := WrapTransportError(errors.New("invalid api key"), 401)
	llm := &scriptedLLM{errs: []error{authErr}}
	p := newTestPlanner(llm, PlannerConfig{})

	_, err := p.Plan(context.Background(), "q")
	if err == nil {
		t.Fatal("Plan() error = nil, want transport failure")
	}
	if len(llm.calls) != 1 {
		t.Errorf("model calls = %d, want 1 (no retries on 401)", len(llm.calls))
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Errorf("error not a TransportError: %v", err)
	}
}

func TestPlanRetriesTransientErrors(t *testing.T) {
	llm := &scriptedLLM{
		errs: []error{
			WrapTransportError(fmt.Errorf("server overloaded"), 503),
			nil,
		},
		responses: []LLMResponse{
			{},
			{Text: "recovered", Usage: flashUsage(1, 1)},
		},
	}
	retry := DefaultRetryPolicy()
	retry.InitialDelay = 0
	retry.MaxDelay = 0
	p := newTestPlanner(llm, PlannerConfig{Retry: &retry})

	got, err := p.Plan(context.Background(), "q")
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(llm.calls) != 2 {
		t.Errorf("model calls = %d, want 2", len(llm.calls))
	}
	if !strings.HasPrefix(got, "recovered") {
		t.Errorf("answer = %q", got)
	}
}

func TestPlanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	llm := &scriptedLLM{responses: []LLMResponse{{Text: "never"}}}
	p := newTestPlanner(llm, PlannerConfig{})

	if _, err := p.Plan(ctx, "q"); !errors.Is(err, context.Canceled) {
		t.Errorf("Plan() error = %v, want context.Canceled", err)
	}
}

// phaseRecorder captures the run phase at each hook boundary.
type phaseRecorder struct {
	NopHook
	stepPhases  []Phase
	toolPhases  []Phase
	endPhase    Phase
	endTerminal bool
	budgetPhase Phase
	budgetHit   bool
}

func (r *phaseRecorder) OnStepStart(_ context.Context, st *State) {
	r.stepPhases = append(r.stepPhases, st.Phase)
}

func (r *phaseRecorder) OnToolCall(_ context.Context, st *State, _ ParsedAction) {
	r.toolPhases = append(r.toolPhases, st.Phase)
}

func (r *phaseRecorder) OnDone(_ context.Context, st *State) {
	r.endPhase = st.Phase
	r.endTerminal = st.Phase.Terminal()
}

func (r *phaseRecorder) OnBudgetExceeded(_ context.Context, st *State, _ float64) {
	r.budgetPhase = st.Phase
	r.budgetHit = true
}

func TestPlanPhaseLifecycle(t *testing.T) {
	t.Run("success run ends in done", func(t *testing.T) {
		llm := &scriptedLLM{responses: []LLMResponse{
			{Text: "Action: noop\nAction Input:", Usage: flashUsage(1, 1)},
			{Text: "final answer", Usage: flashUsage(1, 1)},
		}}
		rec := &phaseRecorder{}
		p := NewPlanner(llm, loopingRegistry(), PlannerConfig{
			Model: "qwen-flash", BudgetLimit: 1, SystemPrompt: "s",
		}, rec)

		if _, err := p.Plan(context.Background(), "q"); err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		for _, ph := range rec.stepPhases {
			if ph != PhaseAwaitingModel || ph.Terminal() {
				t.Errorf("step started in phase %s", ph)
			}
		}
		for _, ph := range rec.toolPhases {
			if ph != PhaseDispatching {
				t.Errorf("tool dispatched in phase %s", ph)
			}
		}
		if rec.endPhase != PhaseDone || !rec.endTerminal {
			t.Errorf("run ended in phase %s (terminal=%v)", rec.endPhase, rec.endTerminal)
		}
	})

	t.Run("budget stop is terminal", func(t *testing.T) {
		llm := &scriptedLLM{responses: []LLMResponse{{Text: "never"}}}
		rec := &phaseRecorder{}
		p := NewPlanner(llm, loopingRegistry(), PlannerConfig{
			Model: "qwen-flash", BudgetLimit: 0.5, SystemPrompt: "s",
		}, rec)
		p.account.Cost = 1

		if _, err := p.Plan(context.Background(), "q"); err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if !rec.budgetHit || rec.budgetPhase != PhaseBudgetExceeded || !rec.budgetPhase.Terminal() {
			t.Errorf("budget stop phase = %s (hit=%v)", rec.budgetPhase, rec.budgetHit)
		}
	})

	t.Run("iteration stop is terminal", func(t *testing.T) {
		llm := &scriptedLLM{responses: []LLMResponse{
			{Text: "Action: noop\nAction Input:", Usage: flashUsage(1, 1)},
		}}
		rec := &phaseRecorder{}
		p := NewPlanner(llm, loopingRegistry(), PlannerConfig{
			Model: "qwen-flash", BudgetLimit: 100, MaxIterations: 2, SystemPrompt: "s",
		}, rec)

		if _, err := p.Plan(context.Background(), "q"); err != nil {
			t.Fatalf("Plan() error = %v", err)
		}
		if rec.endPhase != PhaseIterationExceeded || !rec.endTerminal {
			t.Errorf("run ended in phase %s (terminal=%v)", rec.endPhase, rec.endTerminal)
		}
	})
}
