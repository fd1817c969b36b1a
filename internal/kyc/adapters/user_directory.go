// Package adapters connects the verification service to the platform's user
// directory.
package adapters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
	txcontext "kycgate/pkg/platform/tx"
)

// MemoryDirectory is a process-local user directory for development and tests.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[id.UserID]models.User
}

func NewMemoryDirectory(users ...models.User) *MemoryDirectory {
	d := &MemoryDirectory{users: make(map[id.UserID]models.User, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *MemoryDirectory) Save(_ context.Context, user models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *MemoryDirectory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

// PostgresDirectory reads the platform's users table.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''), email, COALESCE(phone, '')
		FROM users
		WHERE id = $1
	`
	var (
		u     models.User
		rawID string
	)
	err := txcontext.Executor(ctx, d.db).QueryRowContext(ctx, query, userID.String()).
		Scan(&rawID, &u.FirstName, &u.LastName, &u.Email, &u.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	parsed, err := id.ParseUserID(rawID)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	u.ID = parsed
	return &u, nil
}
