//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"library-api/internal/domain/user"
	"library-api/internal/handler/api"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/queries"
	commandsmock "library-api/tests/mock/commands"
	queriesmock "library-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookHandlerTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	commands *commandsmock.MockBookCommands
	queries  *queriesmock.MockBookQueries
	actor    user.Actor
	router   *gin.Engine
}

func (s *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockBookCommands(s.ctrl)
	s.queries = queriesmock.NewMockBookQueries(s.ctrl)
	s.actor = user.NewPrivilegedActor(uuid.New(), user.RoleStaff)

	handler := api.NewBookHandler(s.commands, s.queries)

	s.router = gin.New()
	s.router.Use(func(c *gin.Context) {
		c.Set("actor", s.actor)
		c.Next()
	})
	s.router.POST("/api/books", handler.CreateBook)
	s.router.GET("/api/books", handler.ListBooks)
	s.router.GET("/api/books/:id", handler.GetBook)
	s.router.PUT("/api/books/:id", handler.UpdateBook)
	s.router.GET("/api/books/:id/availability", handler.GetBookAvailability)
}

func (s *BookHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBookHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}

func (s *BookHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *BookHandlerTestSuite) bookView() *queries.BookView {
	return &queries.BookView{
		ID:        uuid.New(),
		Title:     "Clean Architecture",
		Author:    "Robert C. Martin",
		CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (s *BookHandlerTestSuite) TestCreateBook() {
	view := s.bookView()

	s.commands.EXPECT().
		Create(gomock.Any(), gomock.Any(), s.actor).
		Return(view, nil)

	body, err := json.Marshal(map[string]string{
		"title":  view.Title,
		"author": view.Author,
	})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusCreated, rec.Code)
}

func (s *BookHandlerTestSuite) TestCreateBookRequiresTitle() {
	body := []byte(`{"author": "Anonymous"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/books", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *BookHandlerTestSuite) TestGetBookNotFound() {
	id := uuid.New()
	s.queries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrBookNotFound)

	rec := s.get("/api/books/" + id.String())
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *BookHandlerTestSuite) TestGetBookAvailability() {
	view := s.bookView()
	end := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	availability := &queries.BookAvailabilityView{
		ID:                        view.ID,
		Title:                     view.Title,
		Author:                    view.Author,
		IsAvailable:               false,
		CurrentReservationEndDate: &end,
		AvailabilitySummary:       "Reserved until 2026-09-12",
	}

	s.queries.EXPECT().GetAvailability(gomock.Any(), view.ID, nil).Return(availability, nil)

	rec := s.get("/api/books/" + view.ID.String() + "/availability")
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(s.T(), false, got["isAvailable"])
	assert.Equal(s.T(), "Reserved until 2026-09-12", got["availabilitySummary"])
	assert.Equal(s.T(), "2026-09-12", got["currentReservationEndDate"])
}

func (s *BookHandlerTestSuite) TestGetBookAvailabilityWithDate() {
	id := uuid.New()
	ref := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	availability := &queries.BookAvailabilityView{
		ID:                  id,
		Title:               "Clean Architecture",
		Author:              "Robert C. Martin",
		IsAvailable:         true,
		AvailabilitySummary: "Available",
	}

	s.queries.EXPECT().GetAvailability(gomock.Any(), id, &ref).Return(availability, nil)

	rec := s.get("/api/books/" + id.String() + "/availability?date=2026-09-20")
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *BookHandlerTestSuite) TestGetBookAvailabilityRejectsBadDate() {
	rec := s.get("/api/books/" + uuid.NewString() + "/availability?date=20-09-2026")
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}
