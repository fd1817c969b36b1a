//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(EnsureSchema(context.Background(), s.postgres.DB))
	s.store = NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "kyc_verifications", "kyc_audit_events")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestContract() {
	runStoreContract(s.T(), func(*testing.T) recordStore { return s.store })
}

func (s *PostgresStoreSuite) TestDuplicateApplicantIsConflict() {
	seedRecord(s.T(), s.store, "ap_dup")
	other, err := models.NewRecord(id.NewRecordID(), id.UserID(uuid.New()), "ap_dup", baseTime)
	s.Require().NoError(err)

	_, _, err = s.store.InsertIfAbsent(context.Background(), other)
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestEnsureSchemaIsIdempotent() {
	s.NoError(EnsureSchema(context.Background(), s.postgres.DB))
}
