// internal/service/effects.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"my-money/internal/metrics"
)

// PartialFailureError reports a ledger operation that failed after some of
// its writes were already committed. Nothing is rolled back: the committed
// steps stay in place and the caller only gets to report the failure.
type PartialFailureError struct {
	Operation string
	Committed []string
	Failed    string
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: step %q failed after [%s] committed: %v",
		e.Operation, e.Failed, strings.Join(e.Committed, ", "), e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// step is one persistence call of a ledger operation.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// sequence is the explicit, ordered list of effects a ledger operation
// commits. Steps run one after another with no surrounding database
// transaction and no compensation.
type sequence struct {
	operation string
	steps     []step
}

func newSequence(operation string) *sequence {
	return &sequence{operation: operation}
}

// then appends a step and returns the sequence for chaining.
func (s *sequence) then(name string, run func(ctx context.Context) error) *sequence {
	s.steps = append(s.steps, step{name: name, run: run})
	return s
}

// names lists the step names in execution order.
func (s *sequence) names() []string {
	out := make([]string, len(s.steps))
	for i, st := range s.steps {
		out[i] = st.name
	}
	return out
}

// run executes the steps in order and stops at the first failure.
// A failure on the first step returns the step's error as is; a later
// failure is wrapped in a PartialFailureError and logged.
func (s *sequence) run(ctx context.Context, logger *slog.Logger, m *metrics.Metrics, attrs ...any) error {
	for i, st := range s.steps {
		if err := st.run(ctx); err != nil {
			if i == 0 {
				m.ObserveOperation(s.operation, metrics.OutcomeFailed)
				return fmt.Errorf("%s: %w", s.operation, err)
			}
			committed := s.names()[:i]
			logger.Error("Ledger operation left partially applied",
				append(attrs,
					"operation", s.operation,
					"committed", committed,
					"failed_step", st.name,
					"error", err,
				)...)
			m.ObserveOperation(s.operation, metrics.OutcomePartial)
			return &PartialFailureError{
				Operation: s.operation,
				Committed: committed,
				Failed:    st.name,
				Err:       err,
			}
		}
		m.ObserveStep(s.operation, st.name)
	}
	m.ObserveOperation(s.operation, metrics.OutcomeOK)
	logger.Debug("Ledger operation applied", append(attrs, "operation", s.operation, "steps", s.names())...)
	return nil
}
