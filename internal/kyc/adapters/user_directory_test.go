package adapters

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
)

type MemoryDirectorySuite struct {
	suite.Suite
	dir *MemoryDirectory
}

func TestMemoryDirectorySuite(t *testing.T) {
	suite.Run(t, new(MemoryDirectorySuite))
}

func (s *MemoryDirectorySuite) SetupTest() {
	s.dir = NewMemoryDirectory()
}

func (s *MemoryDirectorySuite) TestFindByID() {
	ctx := context.Background()

	s.Run("returns a saved user", func() {
		user := models.User{ID: id.UserID(uuid.New()), FirstName: "Jane", Email: "jane@example.com"}
		s.Require().NoError(s.dir.Save(ctx, user))

		found, err := s.dir.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, *found)
	})

	s.Run("unknown user is sentinel not found", func() {
		_, err := s.dir.FindByID(ctx, id.UserID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("callers cannot mutate stored users", func() {
		user := models.User{ID: id.UserID(uuid.New()), Email: "orig@example.com"}
		dir := NewMemoryDirectory(user)

		found, err := dir.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		found.Email = "changed@example.com"

		again, err := dir.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("orig@example.com", again.Email)
	})
}
