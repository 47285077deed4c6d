package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxIterations caps the ReAct loop regardless of budget.
	DefaultMaxIterations = 10
	// DefaultTemperature is forwarded to the model on every planning call.
	DefaultTemperature float32 = 0.7
	// ObservationPrefix labels tool output fed back as a user turn.
	ObservationPrefix = "Observation: "
)

// PlannerConfig carries the knobs of one Planner. Zero fields fall back to
// the package defaults in NewPlanner.
type PlannerConfig struct {
	Model         string
	Temperature   float32
	BudgetLimit   float64
	MaxIterations int
	Prices        PriceTable
	SystemPrompt  string
	Retry         *RetryPolicy
}

// Planner drives the iterate, call, parse, dispatch, observe cycle for one
// query at a time. The Account persists across Plan calls, so running the
// same Planner for several queries charges them against one budget.
type Planner struct {
	llm     LLMClient
	tools   ToolRegistry
	config  PlannerConfig
	hooks   Hook
	account *Account
}

// NewPlanner builds a Planner around an LLM client and a tool registry.
func NewPlanner(llm LLMClient, tools ToolRegistry, cfg PlannerConfig, hooks ...Hook) *Planner {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if len(cfg.Prices.Models) == 0 {
		cfg.Prices = DefaultPriceTable()
	}
	var h Hook = NopHook{}
	switch len(hooks) {
	case 0:
	case 1:
		h = hooks[0]
	default:
		h = Hooks(hooks)
	}
	return &Planner{
		llm:     llm,
		tools:   tools,
		config:  cfg,
		hooks:   h,
		account: &Account{},
	}
}

// Account exposes the cumulative spend of this Planner.
func (p *Planner) Account() Account { return *p.account }

// Plan answers one query with a bounded ReAct loop. Terminal outcomes are
// returned as user-facing strings; only transport failures that survive the
// retry policy surface as errors.
func (p *Planner) Plan(ctx context.Context, query string) (string, error) {
	st := &State{
		RunID:   uuid.NewString(),
		Phase:   PhaseSeeding,
		Model:   p.config.Model,
		Account: p.account,
	}
	st.Append(ChatMessage{Role: RoleSystem, Content: p.config.SystemPrompt})
	st.Append(ChatMessage{Role: RoleUser, Content: query})

	retry := DefaultRetryPolicy()
	if p.config.Retry != nil {
		retry = *p.config.Retry
	}
	opts := ChatOptions{Temperature: p.config.Temperature}

	for st.Step = 0; st.Step < p.config.MaxIterations; st.Step++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// Budget is checked before the call, never after. A call that
		// pushes the total over the ceiling completes and is booked;
		// worst-case overspend is bounded by one call's cost.
		if p.account.Cost >= p.config.BudgetLimit {
			st.Phase = PhaseBudgetExceeded
			p.hooks.OnBudgetExceeded(ctx, st, p.config.BudgetLimit)
			return p.budgetMessage(), nil
		}

		st.Phase = PhaseAwaitingModel
		p.hooks.OnStepStart(ctx, st)

		resp, err := retryChat(ctx, retry, p.llm, p.config.Model, st.History, opts,
			func(attempt int, delay time.Duration, err error) {
				p.hooks.OnRetryAttempt(ctx, st, attempt, retry.MaxRetries+1, delay, err)
			})
		if err != nil {
			return "", fmt.Errorf("model call failed at step %d: %w", st.Step, err)
		}

		cost := p.config.Prices.Cost(p.config.Model, resp.Usage.Prompt, resp.Usage.Completion)
		p.account.Book(resp.Usage, cost)
		st.Append(ChatMessage{Role: RoleAssistant, Content: resp.Text})
		p.hooks.OnModelResponse(ctx, st, resp, cost)

		action := ExtractAction(resp.Text)
		if action.Name == "" {
			st.Phase = PhaseDone
			p.hooks.OnDone(ctx, st)
			return resp.Text + p.costDisclosure(resp.Usage, cost), nil
		}

		st.Phase = PhaseDispatching
		p.hooks.OnToolCall(ctx, st, action)
		observation := Dispatch(ctx, p.tools, action)
		p.hooks.OnObservation(ctx, st, observation)
		st.Append(ChatMessage{Role: RoleUser, Content: ObservationPrefix + observation})
	}

	st.Phase = PhaseIterationExceeded
	p.hooks.OnDone(ctx, st)
	return fmt.Sprintf("Sorry, I could not complete your request within %d steps. Current cost: %.4f",
		p.config.MaxIterations, p.account.Cost), nil
}

func (p *Planner) budgetMessage() string {
	return fmt.Sprintf("Budget limit reached (%.4f), cannot continue. Current cost: %.4f",
		p.config.BudgetLimit, p.account.Cost)
}

func (p *Planner) costDisclosure(u Usage, cost float64) string {
	return fmt.Sprintf("\n\nCost summary: this turn used %d tokens (~%.4f). Run total: %d tokens, %.4f.",
		u.Total(), cost, p.account.Totals.Total(), p.account.Cost)
}
