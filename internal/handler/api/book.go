package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "library-api/internal/handler/dto/request"
	resdto "library-api/internal/handler/dto/response"
	"library-api/internal/handler/middleware"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	commands commands.BookCommands
	queries  queries.BookQueries
}

func NewBookHandler(cmds commands.BookCommands, qrys queries.BookQueries) *BookHandler {
	return &BookHandler{
		commands: cmds,
		queries:  qrys,
	}
}

// @Summary Create book
// @Description Register a new book in the catalog. Staff only.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BookRequest true "Book request"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.BookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.commands.Create(c.Request.Context(), input, actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookView(view))
}

// @Summary Update book
// @Description Update a book's title, author or publication date. Staff only.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.BookRequest true "Book request"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.BookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.commands.Update(c.Request.Context(), id, input, actor)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary Get book
// @Description Get book by ID
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary List books
// @Description List all books in the catalog
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookResponse
// @Failure 401 {object} map[string]string
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromBookView(rm)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get book availability
// @Description Project a book's availability on a reference date (today when the date query parameter is absent).
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} resdto.BookAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id}/availability [get]
func (h *BookHandler) GetBookAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var referenceDate *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := reqdto.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		referenceDate = &parsed
	}

	view, err := h.queries.GetAvailability(c.Request.Context(), id, referenceDate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookAvailabilityView(view))
}

func (h *BookHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Book not found",
		})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, errs.ErrStorageConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "A conflicting write was rejected, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
