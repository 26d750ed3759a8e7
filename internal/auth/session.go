package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	sessionKeyPrefix = "align-session||"
	tokensSetKey     = "align-sessions"
)

type LoginSession struct {
	Token     string
	Email     string
	CreatedAt time.Time
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// sessionValue encodes a session as "<created at unix>|<email>".
func sessionValue(email string, createdAt time.Time) string {
	return fmt.Sprintf("%d|%s", createdAt.Unix(), email)
}

func parseSessionValue(val string) (string, time.Time, error) {
	createdAtStr, email, ok := strings.Cut(val, "|")
	if !ok || email == "" {
		return "", time.Time{}, fmt.Errorf("malformed session value: %q", val)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("malformed session created at: %w", err)
	}
	return email, time.Unix(createdAtUnix, 0), nil
}
