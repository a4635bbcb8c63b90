package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(users userRepo.UserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthMiddleware(users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.GetString(ContextUserID),
			"role": c.GetString(ContextUserRole),
		})
	})
	return r
}

func getWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareBindsSessionToUser(t *testing.T) {
	users := userRepo.NewMemoryUserRepo(&models.User{ID: "u1", Role: models.RoleClient})
	token, err := utils.GenerateToken("u1", models.RoleClient, time.Hour)
	require.NoError(t, err)
	require.NoError(t, users.SetTokenHash("u1", utils.HashToken(token)))

	w := getWithToken(authRouter(users), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
	assert.Contains(t, w.Body.String(), models.RoleClient)
}

func TestAuthMiddlewareRejectsMissingOrGarbageToken(t *testing.T) {
	users := userRepo.NewMemoryUserRepo(&models.User{ID: "u1", Role: models.RoleClient})
	r := authRouter(users)

	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, "not-a-jwt").Code)
}

func TestAuthMiddlewareRejectsSubjectMismatch(t *testing.T) {
	// A valid token whose subject is not the session holder must be refused
	// even if its hash is stored on some account.
	users := userRepo.NewMemoryUserRepo(&models.User{ID: "u1", Role: models.RoleClient})
	token, err := utils.GenerateToken("u2", models.RoleClient, time.Hour)
	require.NoError(t, err)
	require.NoError(t, users.SetTokenHash("u1", utils.HashToken(token)))

	w := getWithToken(authRouter(users), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRotatedSession(t *testing.T) {
	users := userRepo.NewMemoryUserRepo(&models.User{ID: "u1", Role: models.RoleClient})
	oldToken, err := utils.GenerateToken("u1", models.RoleClient, time.Hour)
	require.NoError(t, err)
	require.NoError(t, users.SetTokenHash("u1", utils.HashToken(oldToken)))

	newToken, err := utils.GenerateToken("u1", models.RoleClient, time.Hour)
	require.NoError(t, err)
	require.NoError(t, users.SetTokenHash("u1", utils.HashToken(newToken)))

	r := authRouter(users)
	assert.Equal(t, http.StatusUnauthorized, getWithToken(r, oldToken).Code)
	assert.Equal(t, http.StatusOK, getWithToken(r, newToken).Code)
}
