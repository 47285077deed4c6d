// Package engine provides the ReAct planning loop: conversation state,
// model-call dispatch, action parsing, tool dispatch and cost accounting.
package engine

// Account accumulates monetary cost and token usage across model calls.
// Values never decrease and are never reset mid-run. An Account may outlive
// a single run when the owning Planner is reused for several queries.
type Account struct {
	Cost   float64
	Totals Usage
}

// Book records one model call's usage report and computed cost.
func (a *Account) Book(u Usage, cost float64) {
	a.Totals.Prompt += u.Prompt
	a.Totals.Completion += u.Completion
	a.Cost += cost
}

// State is the conversation state of one planning run. It is owned by a
// single Plan invocation and discarded when the invocation ends; only the
// Account it points at survives.
type State struct {
	RunID   string
	History []ChatMessage
	Step    int
	Phase   Phase
	Model   string
	Account *Account
}

func (s *State) Append(msg ChatMessage) { s.History = append(s.History, msg) }
