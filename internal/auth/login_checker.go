package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (c *LoginChecker) CurrentUser(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.loginChecker.currentUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	val, err := c.redisClient.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotLogged
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}

	email, createdAt, err := parseSessionValue(val)
	if err != nil {
		return "", err
	}

	if c.now().Sub(createdAt) > c.ttl {
		return "", ErrNotLogged
	}

	return email, nil
}
