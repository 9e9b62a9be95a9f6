//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"library-api/internal/domain/reader"
	"library-api/internal/infra"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"
	queriesmock "library-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReaderQueriesTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	readers *queriesmock.MockReaderReader
	users   *queriesmock.MockUserReader
	queries queries.ReaderQueries
}

func (s *ReaderQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readers = queriesmock.NewMockReaderReader(s.ctrl)
	s.users = queriesmock.NewMockUserReader(s.ctrl)
	s.queries = queries.NewReaderQueries(s.readers, s.users)
}

func (s *ReaderQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReaderQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReaderQueriesTestSuite))
}

func (s *ReaderQueriesTestSuite) TestGetByUserID() {
	userID := uuid.New()
	rd := reader.ReconstructReader(uuid.New(), userID, "Jo Reader", "LE-123ABC", nil, nil, time.Now())

	s.readers.EXPECT().FindByUserID(gomock.Any(), userID).Return(rd, nil)

	got, err := s.queries.GetByUserID(context.Background(), userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), rd.ID(), got.ID)
	assert.Equal(s.T(), "LE-123ABC", got.ReaderCode)
}

func (s *ReaderQueriesTestSuite) TestGetByUserIDNotFound() {
	userID := uuid.New()

	s.readers.EXPECT().
		FindByUserID(gomock.Any(), userID).
		Return(nil, infra.WrapRepoErr("reader not found", errs.New("no rows"), infra.KindNotFound))

	_, err := s.queries.GetByUserID(context.Background(), userID)
	assert.ErrorIs(s.T(), err, errs.ErrReaderNotFound)
}

func (s *ReaderQueriesTestSuite) TestGetAccountByUserID() {
	userID := uuid.New()
	account := &queries.AuthorizedUserView{ID: userID, Email: "staff@example.com", Role: "staff", IsActive: true}

	s.users.EXPECT().FindByID(gomock.Any(), userID).Return(account, nil)

	got, err := s.queries.GetAccountByUserID(context.Background(), userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), account, got)
}

func (s *ReaderQueriesTestSuite) TestGetAccountByUserIDNotFound() {
	userID := uuid.New()

	s.users.EXPECT().
		FindByID(gomock.Any(), userID).
		Return(nil, infra.WrapRepoErr("user not found", errs.New("no rows"), infra.KindNotFound))

	_, err := s.queries.GetAccountByUserID(context.Background(), userID)
	assert.ErrorIs(s.T(), err, errs.ErrUserNotFound)
}
