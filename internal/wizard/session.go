package wizard

import (
	"math"

	"github.com/pkg/errors"
)

// NewSession builds a fresh session over an already-validated requirement
// list. The list must be non-empty; an empty catalog is a load failure,
// not a startable wizard.
func NewSession(id string, reqs []Requirement) (*Session, error) {
	if len(reqs) == 0 {
		return nil, errors.Wrap(ErrLoad, "empty requirement list")
	}
	return &Session{
		ID:            id,
		Requirements:  reqs,
		State:         StateAwaitingApplicability,
		Applicability: map[int64]Applicability{},
		Answers:       map[int64]bool{},
	}, nil
}

func (s *Session) currentStep() Requirement { return s.Requirements[s.StepIndex] }

func (s *Session) lastStep() bool { return s.StepIndex == len(s.Requirements)-1 }

// advance moves to the next step's applicability prompt, or to
// submission-ready when the current step was the last one.
func (s *Session) advance() {
	if s.lastStep() {
		s.QuestionIndex = 0
		s.State = StateSubmissionReady
		return
	}
	s.StepIndex++
	s.QuestionIndex = 0
	s.State = StateAwaitingApplicability
}

// SetApplicability records the branching answer for the currently active
// step. "no" skips the step (clearing any answers recorded on an earlier
// pass) and auto-advances; "yes" proceeds to the step's first question,
// except that a step without questions is vacuously complete and advances
// like "no".
func (s *Session) SetApplicability(stepIndex int, value Applicability) error {
	if value != ApplicabilityYes && value != ApplicabilityNo {
		return errors.Wrapf(ErrSequence, "invalid applicability %q", value)
	}
	if s.State != StateAwaitingApplicability {
		return errors.Wrapf(ErrSequence, "applicability not expected in state %s", s.State)
	}
	if stepIndex != s.StepIndex {
		return errors.Wrapf(ErrSequence, "step %d is not active (active: %d)", stepIndex, s.StepIndex)
	}

	step := s.currentStep()
	s.Applicability[step.ID] = value
	s.QuestionIndex = 0

	if value == ApplicabilityNo {
		// Skipped steps must not contribute answers, even after a
		// yes -> no flip on a revisited step.
		for _, q := range step.Questions {
			delete(s.Answers, q.ID)
		}
		s.advance()
		return nil
	}
	if len(step.Questions) == 0 {
		s.advance()
		return nil
	}
	s.State = StateAnsweringQuestion
	return nil
}

// AnswerQuestion records a yes/no answer. Answering the active question
// advances the wizard; re-answering a question that already holds an
// answer (and whose step is still applicable) overwrites it in place, so
// a rapid duplicate press is idempotent. Anything else is out of order.
func (s *Session) AnswerQuestion(questionID int64, value bool) error {
	if s.State == StateAnsweringQuestion {
		if q := s.currentStep().Questions[s.QuestionIndex]; q.ID == questionID {
			s.Answers[questionID] = value
			if s.QuestionIndex+1 < len(s.currentStep().Questions) {
				s.QuestionIndex++
			} else {
				s.advance()
			}
			return nil
		}
	}
	if _, answered := s.Answers[questionID]; answered && s.stepApplicable(questionID) {
		s.Answers[questionID] = value
		return nil
	}
	return errors.Wrapf(ErrSequence, "question %d is not answerable now", questionID)
}

func (s *Session) stepApplicable(questionID int64) bool {
	for _, r := range s.Requirements {
		for _, q := range r.Questions {
			if q.ID == questionID {
				return s.Applicability[r.ID] == ApplicabilityYes
			}
		}
	}
	return false
}

// GoToPreviousStep returns to the prior step's applicability prompt,
// leaving recorded applicability and answers intact. From submission-ready
// it reopens the last step's prompt instead. No-op on the first prompt.
func (s *Session) GoToPreviousStep() error {
	switch s.State {
	case StateAwaitingApplicability, StateAnsweringQuestion:
		if s.StepIndex == 0 {
			return nil
		}
		s.StepIndex--
		s.QuestionIndex = 0
		s.State = StateAwaitingApplicability
		return nil
	case StateSubmissionReady:
		s.QuestionIndex = 0
		s.State = StateAwaitingApplicability
		return nil
	default:
		return errors.Wrapf(ErrSequence, "cannot navigate back in state %s", s.State)
	}
}

// CanFinish reports whether the session satisfies the completion
// invariant: every step has a determined applicability, and every
// applicable step has all of its questions answered.
func (s *Session) CanFinish() bool {
	for _, r := range s.Requirements {
		a, ok := s.Applicability[r.ID]
		if !ok {
			return false
		}
		if a != ApplicabilityYes {
			continue
		}
		for _, q := range r.Questions {
			if _, answered := s.Answers[q.ID]; !answered {
				return false
			}
		}
	}
	return true
}

// Progress is a derived 0-100 measure of forward traversal. It is exactly
// 0 on the very first prompt and exactly 100 once the last step resolves.
func (s *Session) Progress() int {
	switch s.State {
	case StateSubmissionReady, StateSubmitting, StateCompleted:
		return 100
	}
	n := len(s.Requirements)
	frac := float64(s.StepIndex)
	if s.State == StateAnsweringQuestion {
		if qn := len(s.currentStep().Questions); qn > 0 {
			frac += float64(s.QuestionIndex) / float64(qn)
		}
	}
	p := int(math.Round(100 * frac / float64(n)))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// BuildSubmission assembles the calculate-points payload: one entry per
// requirement in fetched order; answers present only for relevant steps
// and covering every question of the step, defaulting to false.
func (s *Session) BuildSubmission(c Contact) SubmissionRequest {
	reqs := make([]SubmissionRequirement, 0, len(s.Requirements))
	for _, r := range s.Requirements {
		entry := SubmissionRequirement{
			RequirementID: r.ID,
			IsRelevant:    s.Applicability[r.ID] == ApplicabilityYes,
		}
		if entry.IsRelevant && len(r.Questions) > 0 {
			entry.Answers = make([]SubmissionAnswer, 0, len(r.Questions))
			for _, q := range r.Questions {
				entry.Answers = append(entry.Answers, SubmissionAnswer{
					QuestionID: q.ID,
					Answer:     s.Answers[q.ID],
				})
			}
		}
		reqs = append(reqs, entry)
	}
	return SubmissionRequest{Name: c.Name, Email: c.Email, Phone: c.Phone, Requirements: reqs}
}

// BeginSubmit validates the contact details and moves the session into the
// submitting state. The finish flow is only reachable once the completion
// invariant holds and the user is at the end of the sequence; a submit
// already in flight is rejected.
func (s *Session) BeginSubmit(c Contact) error {
	if s.State == StateSubmitting {
		return errors.Wrap(ErrSequence, "submission already in flight")
	}
	if s.State == StateCompleted {
		return errors.Wrap(ErrSequence, "session already completed")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !s.CanFinish() {
		return errors.Wrap(ErrSequence, "wizard is not complete")
	}
	if s.State != StateSubmissionReady && !s.lastStep() {
		return errors.Wrap(ErrSequence, "finish is only available on the last step")
	}
	contact := c
	s.Contact = &contact
	s.State = StateSubmitting
	return nil
}

// FinishSubmit records a successful scoring result.
func (s *Session) FinishSubmit(res Result) {
	result := res
	s.Result = &result
	s.State = StateCompleted
}

// FailSubmit returns a failed submission to submission-ready, keeping
// answers and contact details so the user can retry.
func (s *Session) FailSubmit() {
	s.State = StateSubmissionReady
}

// Reset clears all progress, answers, contact and result back to the
// first applicability prompt. The requirement list is kept as fetched.
func (s *Session) Reset() {
	s.State = StateAwaitingApplicability
	s.StepIndex = 0
	s.QuestionIndex = 0
	s.Applicability = map[int64]Applicability{}
	s.Answers = map[int64]bool{}
	s.Contact = nil
	s.Result = nil
}

// Clone deep-copies the session so stores can hand out values without
// sharing the internal maps.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Applicability = make(map[int64]Applicability, len(s.Applicability))
	for k, v := range s.Applicability {
		cp.Applicability[k] = v
	}
	cp.Answers = make(map[int64]bool, len(s.Answers))
	for k, v := range s.Answers {
		cp.Answers[k] = v
	}
	if s.Contact != nil {
		c := *s.Contact
		cp.Contact = &c
	}
	if s.Result != nil {
		r := *s.Result
		cp.Result = &r
	}
	return &cp
}
