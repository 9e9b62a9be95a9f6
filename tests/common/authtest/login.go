//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"library-api/internal/handler/dto/request"
	"library-api/internal/handler/dto/response"
	"library-api/tests/common/dbtest"
	"library-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const TestPassword = "password123"

func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res response.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	require.NotEmpty(t, res.AccessToken, "Access token missing in login response")

	return res.AccessToken
}

// CreateStaffAndLogin inserts a privileged user and returns their token.
func CreateStaffAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, TestPassword)
}

// CreateReaderAndLogin inserts a reader account with its profile and returns
// the reader id together with the token.
func CreateReaderAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, fullName string) (uuid.UUID, string) {
	t.Helper()
	userID := dbtest.CreateTestUser(t, db, email, "reader")
	readerID := dbtest.CreateTestReader(t, db, userID, fullName)
	return readerID, LoginUser(t, router, email, TestPassword)
}
