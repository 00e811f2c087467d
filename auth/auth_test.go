package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"train-station-api/auth"
)

const secret = "test_secret"

func TestTokenRoundTrip(t *testing.T) {
	t.Run("should parse a freshly minted token", func(t *testing.T) {
		token, err := auth.NewToken(secret, 42, time.Hour)
		require.NoError(t, err)

		claims, err := auth.ParseToken(secret, token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		token, err := auth.NewToken("other_secret", 42, time.Hour)
		require.NoError(t, err)

		_, err = auth.ParseToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		token, err := auth.NewToken(secret, 42, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ParseToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := auth.ParseToken(secret, "not-a-token")
		assert.Error(t, err)
	})
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", auth.RequireUser(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": auth.UserID(c)})
	})
	return router
}

func TestRequireUser(t *testing.T) {
	router := newTestRouter()

	t.Run("should reject a request without a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject an invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should pass the authenticated user id to the handler", func(t *testing.T) {
		token, err := auth.NewToken(secret, 42, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
	})
}
