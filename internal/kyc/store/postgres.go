package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
	txcontext "kycgate/pkg/platform/tx"
)

const recordColumns = `
	id, user_id, provider_applicant_id, provider_external_user_id, status, risk_level,
	submitted_at, reviewed_at, review_result, score, rejection_reason, notes,
	last_webhook_payload, access_token, created_at, updated_at`

const uniqueViolation = "23505"

// PostgresStore persists verification records in PostgreSQL. Every mutation
// is one statement keyed by user or applicant id, so concurrent writers for
// the same row serialize on the row lock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Record, error) {
	rec, err := s.queryOne(ctx, `SELECT `+recordColumns+` FROM kyc_verifications WHERE user_id = $1`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("find verification by user: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) FindByApplicantID(ctx context.Context, applicantID string) (*models.Record, error) {
	rec, err := s.queryOne(ctx, `SELECT `+recordColumns+` FROM kyc_verifications WHERE provider_applicant_id = $1`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("find verification by applicant: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) InsertIfAbsent(ctx context.Context, rec *models.Record) (*models.Record, bool, error) {
	query := `
		INSERT INTO kyc_verifications (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11, $12, $13::jsonb, $14, $15, $16)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + recordColumns
	inserted, err := s.queryOne(ctx, query,
		rec.ID.String(),
		rec.UserID.String(),
		nullString(rec.ProviderApplicantID),
		rec.ProviderExternalUserID,
		string(rec.Status),
		string(rec.RiskLevel),
		nullTime(rec.SubmittedAt),
		nullTime(rec.ReviewedAt),
		nullJSON(rec.ReviewResult),
		nullFloat(rec.Score),
		nullStringPtr(rec.RejectionReason),
		nullStringPtr(rec.Notes),
		nullJSON(rec.LastWebhookPayload),
		rec.AccessToken,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err == nil {
		return inserted, true, nil
	}
	if isUniqueViolation(err) {
		return nil, false, sentinel.ErrConflict
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, fmt.Errorf("insert verification: %w", err)
	}
	// Conflict on user_id: another writer got there first.
	existing, err := s.FindByUserID(ctx, rec.UserID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) SetApplicant(ctx context.Context, userID id.UserID, applicantID string, now time.Time) (*models.Record, error) {
	query := `
		UPDATE kyc_verifications
		SET provider_applicant_id = $2,
			status = CASE WHEN status = 'not_started' THEN 'pending' ELSE status END,
			submitted_at = COALESCE(submitted_at, $3),
			updated_at = $3
		WHERE user_id = $1 AND provider_applicant_id IS NULL
		RETURNING ` + recordColumns
	rec, err := s.queryOne(ctx, query, userID.String(), applicantID, now)
	if err == nil {
		return rec, nil
	}
	if isUniqueViolation(err) {
		return nil, sentinel.ErrConflict
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("set applicant: %w", err)
	}
	current, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.ProviderApplicantID != applicantID {
		return nil, sentinel.ErrAlreadySet
	}
	return current, nil
}

func (s *PostgresStore) SetAccessToken(ctx context.Context, userID id.UserID, token string, now time.Time) error {
	res, err := txcontext.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE kyc_verifications SET access_token = $2, updated_at = $3 WHERE user_id = $1`,
		userID.String(), token, now)
	if err != nil {
		return fmt.Errorf("set access token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// ApplyStatusUpdate only touches the row if its current status may move to
// u.Status; the allowed source statuses travel as a text[] parameter.
func (s *PostgresStore) ApplyStatusUpdate(ctx context.Context, u models.StatusUpdate, now time.Time) (*models.Record, bool, error) {
	sources := make([]string, 0, 4)
	for _, st := range models.AllowedSources(u.Status) {
		sources = append(sources, string(st))
	}
	query := `
		UPDATE kyc_verifications
		SET status = $2,
			score = COALESCE($3, score),
			review_result = COALESCE($4::jsonb, review_result),
			rejection_reason = COALESCE($5, rejection_reason),
			last_webhook_payload = COALESCE($6::jsonb, last_webhook_payload),
			reviewed_at = $7,
			updated_at = $7
		WHERE provider_applicant_id = $1 AND status = ANY($8)
		RETURNING ` + recordColumns
	rec, err := s.queryOne(ctx, query,
		u.ApplicantID,
		string(u.Status),
		nullFloat(u.Score),
		nullJSON(u.ReviewResult),
		nullStringPtr(u.RejectionReason),
		nullJSON(u.WebhookPayload),
		now,
		pq.Array(sources),
	)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, fmt.Errorf("apply status update: %w", err)
	}
	// Nothing updated: either no such applicant, or the edge is disallowed.
	current, err := s.FindByApplicantID(ctx, u.ApplicantID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (s *PostgresStore) ResetReview(ctx context.Context, userID id.UserID, now time.Time) (*models.Record, error) {
	query := `
		UPDATE kyc_verifications
		SET status = 'pending',
			reviewed_at = NULL,
			review_result = NULL,
			score = NULL,
			notes = NULL,
			rejection_reason = NULL,
			updated_at = $2
		WHERE user_id = $1 AND provider_applicant_id IS NOT NULL
		RETURNING ` + recordColumns
	rec, err := s.queryOne(ctx, query, userID.String(), now)
	if err != nil {
		return nil, fmt.Errorf("reset review: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Annotate(ctx context.Context, userID id.UserID, notes *string, risk *models.RiskLevel, now time.Time) (*models.Record, error) {
	var riskArg any
	if risk != nil {
		riskArg = string(*risk)
	}
	query := `
		UPDATE kyc_verifications
		SET notes = COALESCE($2, notes),
			risk_level = COALESCE($3, risk_level),
			updated_at = $4
		WHERE user_id = $1
		RETURNING ` + recordColumns
	rec, err := s.queryOne(ctx, query, userID.String(), nullStringPtr(notes), riskArg, now)
	if err != nil {
		return nil, fmt.Errorf("annotate verification: %w", err)
	}
	return rec, nil
}

// queryOne runs a single-row query and maps sql.ErrNoRows to sentinel.ErrNotFound.
func (s *PostgresStore) queryOne(ctx context.Context, query string, args ...any) (*models.Record, error) {
	row := txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, args...)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return rec, err
}

func scanRecord(row *sql.Row) (*models.Record, error) {
	var (
		recID, userID             uuid.UUID
		applicantID               sql.NullString
		status, risk              string
		submittedAt, reviewedAt   sql.NullTime
		reviewResult, lastPayload []byte
		score                     sql.NullFloat64
		rejectionReason, notes    sql.NullString
		rec                       models.Record
	)
	err := row.Scan(
		&recID, &userID, &applicantID, &rec.ProviderExternalUserID, &status, &risk,
		&submittedAt, &reviewedAt, &reviewResult, &score, &rejectionReason, &notes,
		&lastPayload, &rec.AccessToken, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ID = id.RecordID(recID)
	rec.UserID = id.UserID(userID)
	rec.ProviderApplicantID = applicantID.String
	rec.Status = models.Status(status)
	rec.RiskLevel = models.RiskLevel(risk)
	rec.SubmittedAt = timePtr(submittedAt)
	rec.ReviewedAt = timePtr(reviewedAt)
	rec.ReviewResult = reviewResult
	rec.LastWebhookPayload = lastPayload
	if score.Valid {
		v := score.Float64
		rec.Score = &v
	}
	if rejectionReason.Valid {
		v := rejectionReason.String
		rec.RejectionReason = &v
	}
	if notes.Valid {
		v := notes.String
		rec.Notes = &v
	}
	return &rec, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullStringPtr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

// nullJSON passes JSON as text for a ::jsonb cast, or NULL when empty.
func nullJSON(raw []byte) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
