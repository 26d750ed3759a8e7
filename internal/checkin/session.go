// Package checkin runs daily readiness check-ins over HTTP: sessions live in redis,
// submitted results are kept in postgres.
package checkin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
)

var (
	ErrSessionNotFound  = errors.New("check-in session not found")
	ErrAlreadySubmitted = errors.New("check-in already submitted")
	ErrUnknownMode      = errors.New("unknown check-in mode")
	ErrWrongMode        = errors.New("operation not supported in this mode")
	ErrNoHistory        = errors.New("no check-in history")
)

// Mode is how a check-in is presented.
type Mode string

const (
	// ModeWizard asks the extended question set one question at a time.
	ModeWizard Mode = "wizard"
	// ModeChecklist shows the base question set on a single page.
	ModeChecklist Mode = "checklist"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWizard:
		return ModeWizard, nil
	case ModeChecklist:
		return ModeChecklist, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ModeOf returns the mode presenting the given question set.
func ModeOf(v readiness.Variant) Mode {
	if v == readiness.VariantBase {
		return ModeChecklist
	}
	return ModeWizard
}

func (m Mode) Variant() readiness.Variant {
	if m == ModeChecklist {
		return readiness.VariantBase
	}
	return readiness.VariantExtended
}

type Session struct {
	ID          string             `json:"id"`
	Email       string             `json:"email"`
	Mode        Mode               `json:"mode"`
	Cursor      int                `json:"cursor"`
	Answers     readiness.Response `json:"answers"`
	CreatedAt   time.Time          `json:"createdAt"`
	SubmittedAt *time.Time         `json:"submittedAt,omitempty"`
}

func (s *Session) IsSubmitted() bool {
	return s.SubmittedAt != nil
}
