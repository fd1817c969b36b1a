package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	id "kycgate/pkg/domain"
	audit "kycgate/pkg/platform/audit"
	txcontext "kycgate/pkg/platform/tx"
)

// Store appends audit events to the kyc_audit_events table. When the context
// carries a transaction the insert joins it, so a status change and its audit
// row commit together.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO kyc_audit_events
			(id, category, occurred_at, user_id, applicant_id, action, decision, reason, request_id, actor_id, device)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	var userID any
	if !event.UserID.IsNil() {
		userID = event.UserID.String()
	}
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		uuid.New(),
		string(event.Category),
		event.Timestamp,
		userID,
		event.ApplicantID,
		event.Action,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ActorID,
		event.Device,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	query := `
		SELECT category, occurred_at, applicant_id, action, decision, reason, request_id, actor_id, device
		FROM kyc_audit_events
		WHERE user_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		e := audit.Event{UserID: userID}
		var category string
		if err := rows.Scan(&category, &e.Timestamp, &e.ApplicantID, &e.Action, &e.Decision, &e.Reason, &e.RequestID, &e.ActorID, &e.Device); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
