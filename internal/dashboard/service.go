// Package dashboard serves the home screen: who the user is and how ready they are today.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/checkin"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour            = 60 * 60
	latestScoreExpire  = oneHour * 24
	defaultCacheSizeMB = 16
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

type historyRepo interface {
	Latest(ctx context.Context, email string) (*checkin.Entry, error)
}

type profileService interface {
	DisplayName(ctx context.Context, email string) (string, error)
}

// LatestScore is the most recent submitted check-in score of a user.
type LatestScore struct {
	Score      readiness.Score `json:"score"`
	RecordedAt time.Time       `json:"recordedAt"`
}

type Summary struct {
	Name                string            `json:"name"`
	Date                string            `json:"date"`
	HasCompletedCheckin bool              `json:"hasCompletedCheckin"`
	Score               *readiness.Score  `json:"score,omitempty"`
	Levels              *readiness.Levels `json:"levels,omitempty"`
	Recommendation      string            `json:"recommendation,omitempty"`
	LastCheckinAt       *time.Time        `json:"lastCheckinAt,omitempty"`
}

type Service struct {
	cache    *freecache.Cache
	history  historyRepo
	profiles profileService

	Now func() time.Time
}

func NewService(history historyRepo, profiles profileService, cacheSizeMB int) *Service {
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	megabyte := 1024 * 1024

	return &Service{
		cache:    freecache.NewCache(cacheSizeMB * megabyte),
		history:  history,
		profiles: profiles,
		Now:      time.Now,
	}
}

func cacheKey(email string) []byte {
	return []byte("latest::" + email)
}

// OnReadinessComplete keeps the freshly submitted score as the user's latest one.
func (s *Service) OnReadinessComplete(ctx context.Context, email string, score readiness.Score) {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.service.onReadinessComplete")
	defer span.End()

	s.storeLatest(email, LatestScore{
		Score:      score,
		RecordedAt: s.Now(),
	})
}

func (s *Service) storeLatest(email string, latest LatestScore) {
	latestBytes, err := json.Marshal(latest)
	if err != nil {
		log.Errorf("marshal latest score for %s: %s", email, err)
		return
	}
	if err := s.cache.Set(cacheKey(email), latestBytes, latestScoreExpire); err != nil {
		log.Errorf("failed to write latest score cache for %s: %s", email, err)
	}
}

// OnUserRenamed moves the cached latest score to the new email.
func (s *Service) OnUserRenamed(ctx context.Context, oldEmail, newEmail string) error {
	_, span := tracing.GlobalTracer.Start(ctx, "dashboard.service.onUserRenamed")
	defer span.End()

	latestBytes, err := s.cache.Get(cacheKey(oldEmail))
	if err != nil {
		// not cached, the history fallback covers the new email
		return nil
	}
	if err := s.cache.Set(cacheKey(newEmail), latestBytes, latestScoreExpire); err != nil {
		log.Errorf("failed to move latest score cache from %s to %s: %s", oldEmail, newEmail, err)
	}
	s.cache.Del(cacheKey(oldEmail))
	return nil
}

// Latest returns the latest score of the user, or nil if the user never submitted a check-in.
func (s *Service) Latest(ctx context.Context, email string) (_ *LatestScore, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.service.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if latestBytes, err := s.cache.Get(cacheKey(email)); err == nil {
		var latest LatestScore
		if err := json.Unmarshal(latestBytes, &latest); err == nil {
			log.Tracef("found latest score of %s in cache", email)
			return &latest, nil
		} else {
			log.Errorf("failed to unmarshal latest score from cache for %s: %s", email, err)
		}
	}

	entry, err := s.history.Latest(ctx, email)
	if errors.Is(err, checkin.ErrNoHistory) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest check-in: %w", err)
	}

	latest := LatestScore{
		Score:      entry.Score,
		RecordedAt: entry.CreatedAt,
	}
	s.storeLatest(email, latest)
	return &latest, nil
}

// Summary builds the dashboard of the user. The check-in counts as completed
// only when the latest one was submitted today.
func (s *Service) Summary(ctx context.Context, email string) (_ Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.service.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	name, err := s.profiles.DisplayName(ctx, email)
	if err != nil {
		return Summary{}, err
	}

	now := s.Now()
	summary := Summary{
		Name: name,
		Date: now.Format("Monday, Jan 2"),
	}

	latest, err := s.Latest(ctx, email)
	if err != nil {
		return Summary{}, err
	}
	if latest == nil {
		return summary, nil
	}

	levels := latest.Score.Levels()
	summary.HasCompletedCheckin = sameDay(latest.RecordedAt.In(now.Location()), now)
	summary.Score = &latest.Score
	summary.Levels = &levels
	summary.Recommendation = latest.Score.Recommendation()
	summary.LastCheckinAt = &latest.RecordedAt

	return summary, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
