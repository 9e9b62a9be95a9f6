package api

import (
	"errors"
	"net/http"
	"strings"

	reqdto "library-api/internal/handler/dto/request"
	resdto "library-api/internal/handler/dto/response"
	"library-api/internal/handler/middleware"
	"library-api/internal/pkg/errs"
	"library-api/internal/usecase/commands"
	"library-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands  commands.AuthCommands
	readerQueries queries.ReaderQueries
}

func NewAuthHandler(authCommands commands.AuthCommands, readerQueries queries.ReaderQueries) *AuthHandler {
	return &AuthHandler{
		authCommands:  authCommands,
		readerQueries: readerQueries,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), strings.ToLower(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrInactiveUser):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		User:        result.User,
	})
}

// @Summary Register reader
// @Description Create a reader account with login credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterReaderRequest true "Registration request"
// @Success 201 {object} resdto.ReaderResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	view, err := h.authCommands.RegisterReader(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email already registered",
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
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReaderView(view))
}

// @Summary Get current profile
// @Description Get the reader profile of the authenticated user, or the account view for staff and admins
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.ReaderResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	// Staff and admins have no reader profile; they get the account view.
	if actor.IsPrivileged() {
		account, err := h.readerQueries.GetAccountByUserID(c.Request.Context(), actor.UserID())
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Account not found",
			})
			return
		}
		c.JSON(http.StatusOK, account)
		return
	}

	view, err := h.readerQueries.GetByUserID(c.Request.Context(), actor.UserID())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reader profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReaderView(view))
}
