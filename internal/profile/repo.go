package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/kvstore"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"
)

const keyPrefix = "userProfile_"

// Repo stores profiles as JSON documents in a key-value store.
type Repo struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) *Repo {
	return &Repo{
		store: store,
	}
}

func profileKey(email string) string {
	return keyPrefix + normalizeEmail(email)
}

func (r *Repo) Get(ctx context.Context, email string) (_ *StoredProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := r.store.Get(ctx, profileKey(email))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p StoredProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// Create stores a new profile, failing with ErrUserExists if the email is taken.
func (r *Repo) Create(ctx context.Context, p *StoredProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := r.store.Create(ctx, profileKey(p.UserData.Email), raw); err != nil {
		if errors.Is(err, kvstore.ErrKeyExists) {
			return ErrUserExists
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, p *StoredProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := r.store.Set(ctx, profileKey(p.UserData.Email), raw); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, email string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.store.Delete(ctx, profileKey(email)); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
