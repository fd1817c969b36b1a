// Package domain holds the typed identifiers shared across modules.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "kycgate/pkg/domain-errors"
)

// UserID identifies a member of the platform (owned by the User Directory).
type UserID uuid.UUID

// RecordID identifies a verification record.
type RecordID uuid.UUID

func (u UserID) String() string   { return uuid.UUID(u).String() }
func (u UserID) IsNil() bool      { return uuid.UUID(u) == uuid.Nil }
func (r RecordID) String() string { return uuid.UUID(r).String() }
func (r RecordID) IsNil() bool    { return uuid.UUID(r) == uuid.Nil }

// NewRecordID returns a fresh random record identifier.
func NewRecordID() RecordID {
	return RecordID(uuid.New())
}

// ParseUserID parses a user id at a trust boundary.
func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID(raw, "user_id")
	return UserID(u), err
}

// ParseRecordID parses a record id at a trust boundary.
func ParseRecordID(raw string) (RecordID, error) {
	u, err := parseUUID(raw, "record_id")
	return RecordID(u), err
}

func parseUUID(raw, field string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil UUID")
	}
	return u, nil
}

// MarshalText lets typed IDs serialize as plain UUID strings.
func (u UserID) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *UserID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*u = UserID(parsed)
	return nil
}

func (r RecordID) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RecordID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*r = RecordID(parsed)
	return nil
}
