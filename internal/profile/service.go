package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/metrics"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
	"github.com/mallikaketkar/ALIGN-APP-NEW/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type profileRepo interface {
	Get(ctx context.Context, email string) (*StoredProfile, error)
	Create(ctx context.Context, p *StoredProfile) error
	Save(ctx context.Context, p *StoredProfile) error
	Delete(ctx context.Context, email string) error
}

// RenameListener moves data kept under the user's email when the email changes.
type RenameListener interface {
	OnUserRenamed(ctx context.Context, oldEmail, newEmail string) error
}

type Service struct {
	repo            profileRepo
	metricsManager  *metrics.Manager
	renameListeners []RenameListener
	// bcrypt is slow on purpose, tests inject a cheaper hash
	HashPasswordFunc  func(password string) (string, error)
	CheckPasswordFunc func(password, hash string) bool
}

func NewService(repo profileRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:              repo,
		metricsManager:    metricsManager,
		HashPasswordFunc:  pkg.HashPassword,
		CheckPasswordFunc: pkg.CheckPasswordHash,
	}
}

func (s *Service) AddRenameListener(l RenameListener) {
	s.renameListeners = append(s.renameListeners, l)
}

// SignUp validates the request and creates a profile with empty (default) goals.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (_ *StoredProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.signUp")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := ValidateSignUp(req); err != nil {
		return nil, err
	}

	hash, err := s.HashPasswordFunc(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &StoredProfile{
		UserData: UserData{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		},
		GoalsData: DefaultGoals(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSignups.Inc()
	}
	log.Debugf("new user signed up: %s", p.UserData.Email)

	return p, nil
}

// SignIn checks the credentials and returns the profile with the step the user continues from.
func (s *Service) SignIn(ctx context.Context, email, password string) (_ *StoredProfile, _ Step, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.signIn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if !s.CheckPasswordFunc(password, p.UserData.PasswordHash) {
		return nil, "", ErrWrongPassword
	}

	if p.HasCompletedOnboarding {
		return p, StepDashboard, nil
	}
	return p, StepPersonalInfo, nil
}

func (s *Service) Get(ctx context.Context, email string) (_ *StoredProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Get(ctx, email)
}

// DisplayName returns the name used to greet the user.
func (s *Service) DisplayName(ctx context.Context, email string) (string, error) {
	p, err := s.repo.Get(ctx, email)
	if err != nil {
		return "", err
	}
	return p.DisplayName(), nil
}

// SubmitStep merges the step answers into the stored goals and persists them.
// Submitting the last step completes the onboarding.
func (s *Service) SubmitStep(ctx context.Context, email string, step Step, patch GoalsData) (_ *StoredProfile, _ Step, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.submitStep")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("step", string(step)))

	p, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, "", err
	}

	merged := p.GoalsData.Merge(patch)
	if err := ValidateStep(step, merged); err != nil {
		return nil, "", err
	}

	p.GoalsData = merged
	if step == StepWorkoutPreferences {
		p.HasCompletedOnboarding = true
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, "", err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterOnboardingSteps.WithLabelValues(string(step)).Inc()
	}

	return p, step.Next(), nil
}

// UpdateUserData changes the account data. Changing the email moves the profile to the new key.
func (s *Service) UpdateUserData(ctx context.Context, email string, req UpdateUserRequest) (_ *StoredProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.updateUserData")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := ValidateUpdateUser(req); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	p.UserData.Name = req.Name
	if req.Password != "" {
		hash, err := s.HashPasswordFunc(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		p.UserData.PasswordHash = hash
	}

	oldEmail := p.UserData.Email
	if req.Email == oldEmail {
		if err := s.repo.Save(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p.UserData.Email = req.Email
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	for _, l := range s.renameListeners {
		if err := l.OnUserRenamed(ctx, oldEmail, p.UserData.Email); err != nil {
			if delErr := s.repo.Delete(ctx, p.UserData.Email); delErr != nil {
				log.Errorf("update user data, undo new profile [%s]: %s", p.UserData.Email, delErr)
			}
			return nil, fmt.Errorf("move user data to %s: %w", p.UserData.Email, err)
		}
	}
	if err := s.repo.Delete(ctx, oldEmail); err != nil {
		log.Errorf("update user data, delete old profile [%s]: %s", oldEmail, err)
	}
	log.Debugf("user [%s] changed email to [%s]", oldEmail, p.UserData.Email)

	return p, nil
}

// UpdateGoals replaces all goals at once. The goals must be complete.
func (s *Service) UpdateGoals(ctx context.Context, email string, goals GoalsData) (_ *StoredProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.service.updateGoals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := ValidateGoals(goals); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	p.GoalsData = DefaultGoals().Merge(goals)
	p.HasCompletedOnboarding = true
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// IsValidationErr reports whether err is a form validation failure.
func IsValidationErr(err error) bool {
	return FieldErrors(err) != nil
}
