package engine

// Phase represents where a planning run is in its lifecycle.
type Phase string

const (
	PhaseSeeding           Phase = "seeding"
	PhaseAwaitingModel     Phase = "awaiting_model"
	PhaseDispatching       Phase = "dispatching"
	PhaseDone              Phase = "done"
	PhaseBudgetExceeded    Phase = "budget_exceeded"
	PhaseIterationExceeded Phase = "iteration_exceeded"
)

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseDone, PhaseBudgetExceeded, PhaseIterationExceeded:
		return true
	}
	return false
}
