package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix   = "align-checkin||"
	submittedKeyPrefix = "align-checkin-submitted||"
	DefaultSessionTTL  = 24 * time.Hour
)

// SessionStore keeps in-progress check-ins in redis. Sessions expire after the TTL.
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func submittedKey(id string) string {
	return submittedKeyPrefix + id
}

func (s *SessionStore) Save(ctx context.Context, session *Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.redisClient.Set(ctx, sessionKey(session.ID), string(raw), s.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := s.redisClient.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Del(ctx, sessionKey(id), submittedKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// MarkSubmitted sets the submission marker of a session. It returns false if the
// marker was already set, so only one caller ever wins a submission.
func (s *SessionStore) MarkSubmitted(ctx context.Context, id string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.markSubmitted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	marked, err := s.redisClient.SetNX(ctx, submittedKey(id), "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark session %s submitted: %w", id, err)
	}
	return marked, nil
}

func (s *SessionStore) ClearSubmitted(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.clearSubmitted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.redisClient.Del(ctx, submittedKey(id)).Err(); err != nil {
		return fmt.Errorf("clear session %s submitted: %w", id, err)
	}
	return nil
}

// RenameOwner moves the open sessions of a user to a new email, keeping their TTL.
func (s *SessionStore) RenameOwner(ctx context.Context, oldEmail, newEmail string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "checkin.sessionStore.renameOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	renamed := 0
	iter := s.redisClient.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.redisClient.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			// expired meanwhile
			continue
		}
		if err != nil {
			return renamed, fmt.Errorf("get session %s: %w", key, err)
		}

		var session Session
		if err := json.Unmarshal([]byte(raw), &session); err != nil {
			return renamed, fmt.Errorf("unmarshal session %s: %w", key, err)
		}
		if session.Email != oldEmail {
			continue
		}

		session.Email = newEmail
		updated, err := json.Marshal(session)
		if err != nil {
			return renamed, fmt.Errorf("marshal session: %w", err)
		}
		if err := s.redisClient.Set(ctx, key, string(updated), redis.KeepTTL).Err(); err != nil {
			return renamed, fmt.Errorf("store session %s: %w", key, err)
		}
		renamed++
	}
	if err := iter.Err(); err != nil {
		return renamed, fmt.Errorf("scan sessions: %w", err)
	}
	return renamed, nil
}
