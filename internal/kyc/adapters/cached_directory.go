package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

const (
	userCacheKeyPrefix = "kyc:user:"
	// DefaultUserCacheTTL bounds how stale a cached profile may be.
	DefaultUserCacheTTL = 5 * time.Minute
)

// Directory is the lookup the cache wraps.
type Directory interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}

// CachedDirectory fronts a Directory with Redis. Cache faults fall through to
// the wrapped directory; misses are not cached.
type CachedDirectory struct {
	next   Directory
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

type CachedDirectoryOption func(*CachedDirectory)

func WithCacheTTL(ttl time.Duration) CachedDirectoryOption {
	return func(c *CachedDirectory) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CachedDirectoryOption {
	return func(c *CachedDirectory) {
		c.logger = logger
	}
}

func NewCachedDirectory(next Directory, client redis.UniversalClient, opts ...CachedDirectoryOption) *CachedDirectory {
	c := &CachedDirectory{
		next:   next,
		client: client,
		ttl:    DefaultUserCacheTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type cachedUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (c *CachedDirectory) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	key := userCacheKeyPrefix + userID.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jsonErr := json.Unmarshal(raw, &cu); jsonErr == nil {
			return &models.User{
				ID:        userID,
				FirstName: cu.FirstName,
				LastName:  cu.LastName,
				Email:     cu.Email,
				Phone:     cu.Phone,
			}, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cached user", "user_id", userID.String())
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "user cache read failed", "user_id", userID.String(), "error", err)
	}

	user, err := c.next.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedUser{
		ID:        user.ID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	})
	if err == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "user cache write failed", "user_id", userID.String(), "error", setErr)
		}
	}
	return user, nil
}

// Invalidate drops a cached profile.
func (c *CachedDirectory) Invalidate(ctx context.Context, userID id.UserID) error {
	return c.client.Del(ctx, userCacheKeyPrefix+userID.String()).Err()
}
