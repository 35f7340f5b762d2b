package expect

import (
	"fmt"
	"io"
	"log/slog"
)

// State tracks a Runner through its single verification pass.
type State int

const (
	// StateIdle means verification has not been triggered yet.
	StateIdle State = iota

	// StateRunning means expectations are being evaluated.
	StateRunning

	// StatePassed means every expectation held.
	StatePassed

	// StateFailed means at least one expectation did not hold.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePassed:
		return "passed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Outcome is the result of evaluating one expectation. Err is nil when
// the expectation held.
type Outcome struct {
	Expectation *Expectation
	Err         error
}

// Runner evaluates a registry's expectations once, after packaging. It is
// intended to be triggered exactly once per build invocation by the
// external build hook; construct a fresh Runner per build. Evaluation is
// strictly sequential in registration order and a failing expectation
// never prevents later ones from being evaluated.
type Runner struct {
	logger *slog.Logger
	state  State
}

// NewRunner creates an idle runner. A nil logger discards all output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{logger: logger, state: StateIdle}
}

// State returns the runner's current state.
func (r *Runner) State() State {
	return r.state
}

// Run evaluates every expectation and returns the per-expectation
// outcomes in registration order. It returns an error if the runner
// already ran — the check hook fires once per build.
func (r *Runner) Run(reg *Registry) ([]Outcome, error) {
	if r.state != StateIdle {
		return nil, fmt.Errorf("verification already ran (state %s)", r.state)
	}
	r.state = StateRunning

	outcomes := make([]Outcome, 0, reg.Len())
	failed := 0
	for _, e := range reg.Expectations() {
		err := evaluate(e)
		outcomes = append(outcomes, Outcome{Expectation: e, Err: err})
		if err != nil {
			failed++
			r.logger.Debug("expectation failed", "description", e.Description, "cause", err)
		} else {
			r.logger.Debug("expectation held", "description", e.Description)
		}
	}

	if failed > 0 {
		r.state = StateFailed
		r.logger.Error("verification failed", "failed", failed, "total", len(outcomes))
	} else {
		r.state = StatePassed
		r.logger.Info("verification passed", "total", len(outcomes))
	}
	return outcomes, nil
}

// Verify evaluates every expectation and aggregates failures. It returns
// nil when all expectations held (verification is silent on success) and
// a single *VerificationError enumerating every failure otherwise.
func (r *Runner) Verify(reg *Registry) error {
	outcomes, err := r.Run(reg)
	if err != nil {
		return err
	}
	return Consolidate(outcomes)
}

// Consolidate converts a set of outcomes into the single consolidated
// verification result: nil when nothing failed, a *VerificationError
// carrying every failure otherwise.
func Consolidate(outcomes []Outcome) error {
	var failures []ExpectationFailure
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, ExpectationFailure{
				Description: o.Expectation.Description,
				Cause:       o.Err,
			})
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return &VerificationError{Evaluated: len(outcomes), Failures: failures}
}

// evaluate runs one expectation with panic recovery: a panicking
// assertion block is recorded as that expectation's failure and must not
// abort the overall run.
func evaluate(e *Expectation) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("assertion panicked: %v", rec)
		}
	}()
	return e.Evaluate()
}
