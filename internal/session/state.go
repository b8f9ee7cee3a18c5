// Package session holds the presentation state of one interactive analysis.
// A Session is a plain value: each transition returns the next state and
// leaves the receiver untouched.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/newstrust/internal/model"
)

// ErrInvalidTransition is returned when an event does not apply to the current phase
var ErrInvalidTransition = errors.New("invalid session transition")

// Phase is the step a session is in
type Phase string

const (
	PhaseHome       Phase = "home"
	PhaseFetching   Phase = "fetching"
	PhaseExtracting Phase = "extracting"
	PhaseSearching  Phase = "searching"
	PhaseScoring    Phase = "scoring"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// Session is the presentation state
type Session struct {
	Phase      Phase
	URL        string
	Report     *model.AnalysisReport
	ShowReport bool
}

// New returns a session on the home phase
func New() Session {
	return Session{Phase: PhaseHome}
}

// Submit starts an analysis of url. Only valid from home.
func (s Session) Submit(url string) (Session, error) {
	url = strings.TrimSpace(url)
	if s.Phase != PhaseHome {
		return s, fmt.Errorf("submit in %s: %w", s.Phase, ErrInvalidTransition)
	}
	if url == "" {
		return s, fmt.Errorf("submit: empty URL: %w", ErrInvalidTransition)
	}
	return Session{Phase: PhaseFetching, URL: url}, nil
}

var stagePhase = map[model.Stage]Phase{
	model.StageFetch:  PhaseFetching,
	model.StageClaims: PhaseExtracting,
	model.StageSearch: PhaseSearching,
	model.StageScore:  PhaseScoring,
}

var phaseOrder = map[Phase]int{
	PhaseFetching:   1,
	PhaseExtracting: 2,
	PhaseSearching:  3,
	PhaseScoring:    4,
}

// Advance moves to the phase of a pipeline stage. Stages only move forward;
// repeating the current stage is a no-op.
func (s Session) Advance(stage model.Stage) (Session, error) {
	next, ok := stagePhase[stage]
	if !ok {
		return s, fmt.Errorf("advance to stage %q: %w", stage, ErrInvalidTransition)
	}
	cur, running := phaseOrder[s.Phase]
	if !running || phaseOrder[next] < cur {
		return s, fmt.Errorf("advance from %s to %s: %w", s.Phase, next, ErrInvalidTransition)
	}
	s.Phase = next
	return s, nil
}

// Complete stores the finished report. A degraded report moves the session
// to failed; the report is shown right away either way.
func (s Session) Complete(report *model.AnalysisReport) (Session, error) {
	if _, running := phaseOrder[s.Phase]; !running {
		return s, fmt.Errorf("complete in %s: %w", s.Phase, ErrInvalidTransition)
	}
	if report == nil {
		return s, fmt.Errorf("complete: nil report: %w", ErrInvalidTransition)
	}
	s.Report = report
	s.ShowReport = true
	s.Phase = PhaseDone
	if report.Degraded() {
		s.Phase = PhaseFailed
	}
	return s, nil
}

// Fail ends a running analysis with a degraded report
func (s Session) Fail(report *model.AnalysisReport) (Session, error) {
	if _, running := phaseOrder[s.Phase]; !running {
		return s, fmt.Errorf("fail in %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.Report = report
	s.ShowReport = report != nil
	s.Phase = PhaseFailed
	return s, nil
}

// ToggleReport shows or hides the detailed report once analysis has ended
func (s Session) ToggleReport() (Session, error) {
	if s.Phase != PhaseDone && s.Phase != PhaseFailed {
		return s, fmt.Errorf("toggle report in %s: %w", s.Phase, ErrInvalidTransition)
	}
	s.ShowReport = !s.ShowReport
	return s, nil
}

// Reset returns to home and clears all state
func (s Session) Reset() Session {
	return New()
}

// Running reports whether an analysis is in progress
func (s Session) Running() bool {
	_, running := phaseOrder[s.Phase]
	return running
}
