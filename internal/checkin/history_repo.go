package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/readiness"
	"github.com/mallikaketkar/ALIGN-APP-NEW/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Schema creates the check-in history table.
const Schema = `
CREATE TABLE IF NOT EXISTS readiness_checkin (
	id         BIGSERIAL PRIMARY KEY,
	email      TEXT        NOT NULL,
	session_id TEXT        NOT NULL,
	mode       TEXT        NOT NULL,
	physical   SMALLINT    NOT NULL,
	mental     SMALLINT    NOT NULL,
	recovery   SMALLINT    NOT NULL,
	overall    SMALLINT    NOT NULL,
	answers    JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS readiness_checkin_email_created_at_idx
	ON readiness_checkin (email, created_at DESC);
`

// Entry is one submitted check-in.
type Entry struct {
	ID        int64              `json:"id"`
	Email     string             `json:"email"`
	SessionID string             `json:"sessionId"`
	Mode      Mode               `json:"mode"`
	Score     readiness.Score    `json:"score"`
	Answers   readiness.Response `json:"answers"`
	CreatedAt time.Time          `json:"createdAt"`
}

type HistoryRepo struct {
	db *pgxpool.Pool
}

func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{
		db: db,
	}
}

func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create readiness_checkin schema: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkin.history.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	answers, err := json.Marshal(entry.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO readiness_checkin (email, session_id, mode, physical, mental, recovery, overall, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		entry.Email,
		entry.SessionID,
		string(entry.Mode),
		entry.Score.Physical,
		entry.Score.Mental,
		entry.Score.Recovery,
		entry.Score.Overall,
		answers,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("insert check-in: %w", err)
	}
	return &entry, nil
}

// List returns the latest entries of the user, newest first.
func (r *HistoryRepo) List(ctx context.Context, email string, limit int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkin.history.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(ctx, `
		SELECT id, email, session_id, mode, physical, mental, recovery, overall, answers, created_at
		FROM readiness_checkin
		WHERE email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, email, limit)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return entries, nil
}

// Latest returns the newest entry of the user, or ErrNoHistory.
func (r *HistoryRepo) Latest(ctx context.Context, email string) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkin.history.latest")
	defer func() {
		if errors.Is(err, ErrNoHistory) {
			tracing.EndSpanWithErrCheck(span, nil)
			return
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `
		SELECT id, email, session_id, mode, physical, mental, recovery, overall, answers, created_at
		FROM readiness_checkin
		WHERE email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, email)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoHistory
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Rename moves all entries of a user to a new email.
func (r *HistoryRepo) Rename(ctx context.Context, oldEmail, newEmail string) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.checkin.history.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE readiness_checkin
		SET email = $2
		WHERE email = $1
	`, oldEmail, newEmail)
	if err != nil {
		return 0, fmt.Errorf("rename check-ins: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var (
		entry   Entry
		mode    string
		answers []byte
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Email,
		&entry.SessionID,
		&mode,
		&entry.Score.Physical,
		&entry.Score.Mental,
		&entry.Score.Recovery,
		&entry.Score.Overall,
		&answers,
		&entry.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan check-in: %w", err)
	}
	entry.Mode = Mode(mode)
	if err := json.Unmarshal(answers, &entry.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &entry, nil
}
