package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/metrics"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultHistoryLimit = 30

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=checkin_test

type sessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	MarkSubmitted(ctx context.Context, id string) (bool, error)
	ClearSubmitted(ctx context.Context, id string) error
	RenameOwner(ctx context.Context, oldEmail, newEmail string) (int, error)
}

type historyRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	List(ctx context.Context, email string, limit int) ([]Entry, error)
	Latest(ctx context.Context, email string) (*Entry, error)
	Rename(ctx context.Context, oldEmail, newEmail string) (int64, error)
}

// CompletionListener is told about every submitted check-in, once per submission.
type CompletionListener interface {
	OnReadinessComplete(ctx context.Context, email string, score readiness.Score)
}

type Service struct {
	engines        map[Mode]*readiness.Engine
	defaultMode    Mode
	store          sessionStore
	history        historyRepo
	listeners      []CompletionListener
	metricsManager *metrics.Manager
	historyLimit   int

	// ability to inject session ids and clock (for unit testing)
	NewIDFunc func() string
	Now       func() time.Time
}

type NewServiceParams struct {
	DefaultVariant readiness.Variant
	Store          sessionStore
	History        historyRepo
	MetricsManager *metrics.Manager
	HistoryLimit   int
}

func NewService(params NewServiceParams) (*Service, error) {
	engines := make(map[Mode]*readiness.Engine, 2)
	for _, mode := range []Mode{ModeWizard, ModeChecklist} {
		engine, err := readiness.NewEngine(mode.Variant())
		if err != nil {
			return nil, fmt.Errorf("create %s engine: %w", mode, err)
		}
		engines[mode] = engine
	}

	defaultVariant := params.DefaultVariant
	if defaultVariant == "" {
		defaultVariant = readiness.VariantExtended
	}
	if _, err := readiness.ParseVariant(string(defaultVariant)); err != nil {
		return nil, err
	}

	historyLimit := params.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}

	return &Service{
		engines:        engines,
		defaultMode:    ModeOf(defaultVariant),
		store:          params.Store,
		history:        params.History,
		metricsManager: params.MetricsManager,
		historyLimit:   historyLimit,
		NewIDFunc:      uuid.NewString,
		Now:            time.Now,
	}, nil
}

func (s *Service) AddListener(l CompletionListener) {
	s.listeners = append(s.listeners, l)
}

// Engine returns the scoring engine behind a mode. An empty mode selects the default one.
func (s *Service) Engine(mode Mode) *readiness.Engine {
	if mode == "" {
		mode = s.defaultMode
	}
	return s.engines[mode]
}

func (s *Service) Questions(mode Mode) []readiness.Question {
	return s.Engine(mode).Catalog().Questions()
}

// Start opens a new check-in session for the user. An empty mode selects the default one.
func (s *Service) Start(ctx context.Context, email string, mode Mode) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if mode == "" {
		mode = s.defaultMode
	}
	if _, ok := s.engines[mode]; !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	span.SetAttributes(attribute.String("mode", string(mode)))

	session := &Session{
		ID:        s.NewIDFunc(),
		Email:     email,
		Mode:      mode,
		Answers:   readiness.Response{},
		CreatedAt: s.Now(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return View{}, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterCheckinsStarted.WithLabelValues(string(mode)).Inc()
	}
	log.Debugf("check-in [%s] started by %s in %s mode", session.ID, email, mode)

	engine := s.engines[mode]
	return newView(session, engine, engine.NewCollector()), nil
}

// load returns the user's session with its answers restored into a collector.
func (s *Service) load(ctx context.Context, email, id string) (*Session, *readiness.Engine, *readiness.Collector, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	// sessions of other users are invisible
	if session.Email != email {
		return nil, nil, nil, ErrSessionNotFound
	}

	engine, ok := s.engines[session.Mode]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, session.Mode)
	}
	collector, err := readiness.RestoreCollector(engine.Catalog(), session.Answers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	return session, engine, collector, nil
}

// mutate applies fn to an unsubmitted session and persists the outcome.
func (s *Service) mutate(
	ctx context.Context,
	email, id string,
	fn func(session *Session, collector *readiness.Collector) error,
) (View, error) {
	session, engine, collector, err := s.load(ctx, email, id)
	if err != nil {
		return View{}, err
	}
	if session.IsSubmitted() {
		return View{}, ErrAlreadySubmitted
	}

	if err := fn(session, collector); err != nil {
		return View{}, err
	}

	session.Answers = collector.Response()
	if err := s.store.Save(ctx, session); err != nil {
		return View{}, err
	}
	return newView(session, engine, collector), nil
}

func (s *Service) Get(ctx context.Context, email, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, engine, collector, err := s.load(ctx, email, id)
	if err != nil {
		return View{}, err
	}
	return newView(session, engine, collector), nil
}

// Answer records a single answer. Multi-select questions take the whole token set.
func (s *Service) Answer(ctx context.Context, email, id, questionID string, answer readiness.Answer) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.answer")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("question", questionID))

	return s.mutate(ctx, email, id, func(_ *Session, collector *readiness.Collector) error {
		return collector.Record(questionID, answer)
	})
}

// Toggle checks or unchecks one token of a multi-select question.
func (s *Service) Toggle(ctx context.Context, email, id, questionID, token string, checked bool) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("question", questionID))

	return s.mutate(ctx, email, id, func(_ *Session, collector *readiness.Collector) error {
		return collector.Toggle(questionID, token, checked)
	})
}

// Advance moves a wizard to the next question. View.Done is set once the last
// question is passed with a complete response.
func (s *Service) Advance(ctx context.Context, email, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.advance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var done bool
	view, err := s.mutate(ctx, email, id, func(session *Session, collector *readiness.Collector) error {
		if session.Mode != ModeWizard {
			return ErrWrongMode
		}
		w := readiness.RestoreWizard(collector, session.Cursor)
		var advanceErr error
		done, advanceErr = w.Advance()
		session.Cursor = w.Cursor()
		return advanceErr
	})
	if err != nil {
		return View{}, err
	}
	view.Done = done
	return view, nil
}

func (s *Service) Retreat(ctx context.Context, email, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.retreat")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.mutate(ctx, email, id, func(session *Session, collector *readiness.Collector) error {
		if session.Mode != ModeWizard {
			return ErrWrongMode
		}
		w := readiness.RestoreWizard(collector, session.Cursor)
		w.Retreat()
		session.Cursor = w.Cursor()
		return nil
	})
}

// Preview scores the answers given so far.
func (s *Service) Preview(ctx context.Context, email, id string) (_ Preview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.preview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, engine, collector, err := s.load(ctx, email, id)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Result:    engine.Preview(collector),
		Complete:  collector.IsComplete(),
		Remaining: collector.Remaining(),
	}, nil
}

// Submit finalizes a complete check-in: the result is stored in the history and
// listeners are notified. A session is submitted at most once until it is reset.
func (s *Service) Submit(ctx context.Context, email, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.submit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, engine, collector, err := s.load(ctx, email, id)
	if err != nil {
		return View{}, err
	}
	if session.IsSubmitted() {
		return View{}, ErrAlreadySubmitted
	}

	result, err := engine.Final(collector)
	if err != nil {
		return View{}, err
	}

	marked, err := s.store.MarkSubmitted(ctx, id)
	if err != nil {
		return View{}, err
	}
	if !marked {
		return View{}, ErrAlreadySubmitted
	}

	// saved as submitted before the result is stored
	now := s.Now()
	session.SubmittedAt = &now
	if err := s.store.Save(ctx, session); err != nil {
		s.releaseSubmission(ctx, id)
		return View{}, err
	}

	if _, err := s.history.Add(ctx, Entry{
		Email:     email,
		SessionID: id,
		Mode:      session.Mode,
		Score:     result.Score,
		Answers:   collector.Response(),
		CreatedAt: now,
	}); err != nil {
		session.SubmittedAt = nil
		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			// the session stays read-only until it is reset
			log.Errorf("submit check-in [%s], restore session: %s", id, saveErr)
		}
		s.releaseSubmission(ctx, id)
		return View{}, fmt.Errorf("store check-in result: %w", err)
	}

	for _, l := range s.listeners {
		l.OnReadinessComplete(ctx, email, result.Score)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterCheckinsCompleted.WithLabelValues(string(result.Levels.Overall)).Inc()
		s.metricsManager.HistogramReadinessScore.WithLabelValues("overall").Observe(float64(result.Score.Overall))
		s.metricsManager.HistogramReadinessScore.WithLabelValues("physical").Observe(float64(result.Score.Physical))
		s.metricsManager.HistogramReadinessScore.WithLabelValues("mental").Observe(float64(result.Score.Mental))
		s.metricsManager.HistogramReadinessScore.WithLabelValues("recovery").Observe(float64(result.Score.Recovery))
	}
	log.Debugf("check-in [%s] submitted by %s: overall %d", id, email, result.Score.Overall)

	view := newView(session, engine, collector)
	view.Result = &result
	return view, nil
}

func (s *Service) releaseSubmission(ctx context.Context, id string) {
	if err := s.store.ClearSubmitted(ctx, id); err != nil {
		log.Errorf("submit check-in [%s], clear marker: %s", id, err)
	}
}

// Reset clears the answers, rewinds the wizard and drops the submission marker.
func (s *Service) Reset(ctx context.Context, email, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, engine, collector, err := s.load(ctx, email, id)
	if err != nil {
		return View{}, err
	}

	collector.Clear()
	session.Answers = collector.Response()
	session.Cursor = 0
	session.SubmittedAt = nil

	if err := s.store.ClearSubmitted(ctx, id); err != nil {
		return View{}, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return View{}, err
	}
	return newView(session, engine, collector), nil
}

// Discard deletes the session.
func (s *Service) Discard(ctx context.Context, email, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.discard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, _, _, err := s.load(ctx, email, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// History returns the user's submitted check-ins, newest first. The limit is capped.
func (s *Service) History(ctx context.Context, email string, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	entries, err := s.history.List(ctx, email, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Latest returns the newest submitted check-in of the user, or ErrNoHistory.
func (s *Service) Latest(ctx context.Context, email string) (*Entry, error) {
	return s.history.Latest(ctx, email)
}

// OnUserRenamed moves the user's history and open sessions to the new email.
// A failed history move is returned; sessions are short-lived and only logged.
func (s *Service) OnUserRenamed(ctx context.Context, oldEmail, newEmail string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.service.onUserRenamed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	moved, err := s.history.Rename(ctx, oldEmail, newEmail)
	if err != nil {
		return fmt.Errorf("rename check-in history: %w", err)
	}

	sessions, err := s.store.RenameOwner(ctx, oldEmail, newEmail)
	if err != nil {
		log.Errorf("rename check-in sessions of %s: %s", oldEmail, err)
	}
	log.Debugf("moved %d check-ins and %d sessions from %s to %s", moved, sessions, oldEmail, newEmail)
	return nil
}

// IsClientErr reports whether err was caused by the request rather than the service.
func IsClientErr(err error) bool {
	for _, target := range []error{
		readiness.ErrInvalidAnswer,
		readiness.ErrUnknownQuestion,
		readiness.ErrIncompleteResponse,
		ErrWrongMode,
		ErrUnknownMode,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
