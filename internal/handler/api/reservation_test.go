//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-api/internal/domain/user"
	"library-api/internal/handler/api"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"
	"library-api/tests/common/builder"
	commandsmock "library-api/tests/mock/commands"
	queriesmock "library-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	commands *commandsmock.MockReservationCommands
	queries  *queriesmock.MockReservationQueries
	actor    user.Actor
	router   *gin.Engine
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockReservationCommands(s.ctrl)
	s.queries = queriesmock.NewMockReservationQueries(s.ctrl)
	s.actor = user.NewPrivilegedActor(uuid.New(), user.RoleStaff)

	handler := api.NewReservationHandler(s.commands, s.queries)

	s.router = gin.New()
	// Stand-in for the auth middleware: inject the suite's actor.
	s.router.Use(func(c *gin.Context) {
		c.Set("actor", s.actor)
		c.Next()
	})
	s.router.POST("/api/reservations", handler.CreateReservation)
	s.router.GET("/api/reservations", handler.ListReservations)
	s.router.GET("/api/reservations/:id", handler.GetReservation)
	s.router.PUT("/api/reservations/:id", handler.UpdateReservation)
	s.router.POST("/api/reservations/:id/cancel", handler.CancelReservation)
	s.router.DELETE("/api/reservations/:id", handler.DeleteReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	b := builder.NewReservationBuilder()
	view := b.BuildView()

	s.commands.EXPECT().
		Create(gomock.Any(), gomock.Any(), s.actor).
		Return(view, nil)

	rec := s.do(http.MethodPost, "/api/reservations", b.BuildCreateRequestDTO())

	assert.Equal(s.T(), http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(s.T(), view.ID.String(), got["id"])
	assert.Equal(s.T(), view.BookTitle, got["bookTitle"])
	assert.Equal(s.T(), "2026-09-10", got["startDate"])
	assert.Equal(s.T(), "2026-09-14", got["endDate"])
}

func (s *ReservationHandlerTestSuite) TestCreateReservationErrors() {
	tests := []struct {
		name       string
		commandErr error
		wantStatus int
	}{
		{"overlapping period", errs.ErrReservationConflict, http.StatusConflict},
		{"unknown book", errs.ErrBookNotFound, http.StatusNotFound},
		{"unknown reader", errs.ErrReaderNotFound, http.StatusNotFound},
		{"invalid period", errs.ErrInvalidDateRange, http.StatusBadRequest},
		{"validation failure", errs.ErrDomainValidation, http.StatusBadRequest},
		{"persistent write conflict", errs.ErrStorageConflict, http.StatusConflict},
		{"storage failure", errs.ErrDatabaseOperationFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.commands.EXPECT().
				Create(gomock.Any(), gomock.Any(), s.actor).
				Return(nil, tt.commandErr)

			rec := s.do(http.MethodPost, "/api/reservations", builder.NewReservationBuilder().BuildCreateRequestDTO())
			assert.Equal(s.T(), tt.wantStatus, rec.Code)
		})
	}
}

func (s *ReservationHandlerTestSuite) TestCreateReservationRejectsMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestCreateReservationRejectsBadDate() {
	dto := builder.NewReservationBuilder().BuildCreateRequestDTO()
	dto.StartDate = "10/09/2026"

	rec := s.do(http.MethodPost, "/api/reservations", dto)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	b := builder.NewReservationBuilder()
	view := b.BuildView()
	id := uuid.New()

	s.commands.EXPECT().
		Update(gomock.Any(), id, gomock.Any(), s.actor).
		Return(view, nil)

	rec := s.do(http.MethodPut, "/api/reservations/"+id.String(), b.BuildCreateRequestDTO())
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestUpdateReservationIllegalTransition() {
	id := uuid.New()
	s.commands.EXPECT().
		Update(gomock.Any(), id, gomock.Any(), s.actor).
		Return(nil, errs.ErrIllegalTransition)

	rec := s.do(http.MethodPut, "/api/reservations/"+id.String(), builder.NewReservationBuilder().BuildCreateRequestDTO())
	assert.Equal(s.T(), http.StatusUnprocessableEntity, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestUpdateReservationInvalidID() {
	rec := s.do(http.MethodPut, "/api/reservations/not-a-uuid", builder.NewReservationBuilder().BuildCreateRequestDTO())
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	id := uuid.New()
	s.commands.EXPECT().Cancel(gomock.Any(), id, s.actor).Return(nil)

	rec := s.do(http.MethodPost, "/api/reservations/"+id.String()+"/cancel", nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestCancelReservationForbidden() {
	id := uuid.New()
	s.commands.EXPECT().Cancel(gomock.Any(), id, s.actor).Return(errs.ErrForbidden)

	rec := s.do(http.MethodPost, "/api/reservations/"+id.String()+"/cancel", nil)
	assert.Equal(s.T(), http.StatusForbidden, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestDeleteReservation() {
	id := uuid.New()
	s.commands.EXPECT().Delete(gomock.Any(), id, s.actor).Return(nil)

	rec := s.do(http.MethodDelete, "/api/reservations/"+id.String(), nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestDeleteReservationNotFound() {
	id := uuid.New()
	s.commands.EXPECT().Delete(gomock.Any(), id, s.actor).Return(errs.ErrReservationNotFound)

	rec := s.do(http.MethodDelete, "/api/reservations/"+id.String(), nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	view := builder.NewReservationBuilder().BuildView()

	s.queries.EXPECT().GetByID(gomock.Any(), view.ID, s.actor).Return(view, nil)

	rec := s.do(http.MethodGet, "/api/reservations/"+view.ID.String(), nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *ReservationHandlerTestSuite) TestListReservations() {
	list := builder.NewReservationBuilder().BuildListItem()
	s.queries.EXPECT().
		List(gomock.Any(), s.actor).
		Return([]*queries.ReservationListItem{list}, nil)

	rec := s.do(http.MethodGet, "/api/reservations", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(s.T(), got, 1)
	assert.Equal(s.T(), list.ID.String(), got[0]["id"])
}
