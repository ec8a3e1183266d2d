package wizard

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/koshi-quality/assessment/internal/syncx"
)

// StandardsAPI is the remote quality-standard service the wizard talks
// to: one read (requirements) and one write (calculate-points).
type StandardsAPI interface {
	FetchRequirements(ctx context.Context) ([]Requirement, error)
	SubmitAssessment(ctx context.Context, req SubmissionRequest) (Result, error)
}

// Options carry the two product-policy choices the source variants
// disagree on.
type Options struct {
	// AllowPrevious enables back navigation to earlier steps.
	AllowPrevious bool
	// ResetOnComplete wipes the session back to the first prompt after a
	// successful submission instead of parking it in the completed state.
	ResetOnComplete bool
}

// Service drives wizard sessions: it owns the load/submit lifecycle and
// delegates all transition rules to the Session state machine.
type Service struct {
	store  Store
	api    StandardsAPI
	events *syncx.EventRepo // optional
	opts   Options
}

func NewService(store Store, api StandardsAPI, events *syncx.EventRepo, opts Options) *Service {
	return &Service{store: store, api: api, events: events, opts: opts}
}

// Start fetches the requirement catalog and opens a new session on it.
// Any fetch or shape failure surfaces as a load error and no session is
// created.
func (s *Service) Start(ctx context.Context) (*Session, error) {
	reqs, err := s.api.FetchRequirements(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := NewSession(uuid.NewString(), reqs)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutSession(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "persist new session")
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.GetSession(ctx, id)
}

func (s *Service) SetApplicability(ctx context.Context, id string, stepIndex int, value Applicability) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		return sess.SetApplicability(stepIndex, value)
	})
}

func (s *Service) AnswerQuestion(ctx context.Context, id string, questionID int64, answer bool) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		return sess.AnswerQuestion(questionID, answer)
	})
}

func (s *Service) Previous(ctx context.Context, id string) (*Session, error) {
	if !s.opts.AllowPrevious {
		return nil, errors.Wrap(ErrSequence, "previous navigation is disabled")
	}
	return s.mutate(ctx, id, func(sess *Session) error {
		return sess.GoToPreviousStep()
	})
}

func (s *Service) Reset(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(sess *Session) error {
		sess.Reset()
		return nil
	})
}

// Submit runs the finish flow: contact validation, payload assembly, the
// remote calculate-points call, and the completed/failed bookkeeping. On
// failure the session returns to submission-ready with everything intact
// so the caller can retry.
func (s *Service) Submit(ctx context.Context, id string, contact Contact) (Result, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if err := sess.BeginSubmit(contact); err != nil {
		return Result{}, err
	}
	// Persist the in-flight marker so a concurrent submit is rejected.
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return Result{}, errors.Wrap(err, "persist submitting state")
	}

	res, err := s.api.SubmitAssessment(ctx, sess.BuildSubmission(contact))
	if err != nil {
		sess.FailSubmit()
		if saveErr := s.store.SaveSession(ctx, sess); saveErr != nil {
			log.Printf("wizard: save after failed submit: %v", saveErr)
		}
		s.appendEvent(ctx, syncx.EventSubmissionFailed, sess.ID, map[string]any{"error": err.Error()})
		return Result{}, err
	}

	sess.FinishSubmit(res)
	if s.opts.ResetOnComplete {
		sess.Reset()
	}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return Result{}, errors.Wrap(err, "persist completed session")
	}
	s.appendEvent(ctx, syncx.EventAssessmentSubmitted, sess.ID, res)
	return res, nil
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "persist session")
	}
	return sess, nil
}

func (s *Service) appendEvent(ctx context.Context, typ, key string, data any) {
	if s.events == nil {
		return
	}
	buf, err := json.Marshal(data)
	if err != nil {
		buf = []byte("{}")
	}
	if err := s.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(buf)}); err != nil {
		log.Printf("wizard: append %s event: %v", typ, err)
	}
}
