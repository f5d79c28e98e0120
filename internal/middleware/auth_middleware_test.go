package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := NewAuthMiddleware(jwtService)

	group := router.Group("/", m.JWTAuth())
	if requiredRole != "" {
		group.Use(m.RoleRequired(requiredRole))
	}
	group.GET("protected", func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return router
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role models.RoleType) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.Member{
		ID:       42,
		Email:    "jane@clubsphere.app",
		RoleType: role,
	})
	require.NoError(t, err)
	return accessToken
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "clubsphere.test",
	})
}

func TestJWTAuth_ValidBearerToken(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(jwtService, "")
	token := issueToken(t, jwtService, models.RoleMember)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "42")
}

func TestJWTAuth_RawTokenWithoutBearerPrefix(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(jwtService, "")
	token := issueToken(t, jwtService, models.RoleMember)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestJWTAuth_QueryParamFallback(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(jwtService, "")
	token := issueToken(t, jwtService, models.RoleMember)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected?token="+token, nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newTestRouter(testJWTService(), "")

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := newTestRouter(testJWTService(), "")

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
	})
	router := newTestRouter(expiredService, "")
	token := issueToken(t, expiredService, models.RoleMember)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "expired")
}

func TestRoleRequired_AdminAllowed(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(jwtService, string(models.RoleAdmin))
	token := issueToken(t, jwtService, models.RoleAdmin)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRoleRequired_MemberRejected(t *testing.T) {
	jwtService := testJWTService()
	router := newTestRouter(jwtService, string(models.RoleAdmin))
	token := issueToken(t, jwtService, models.RoleMember)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestGetUserID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetUserID(c)
	assert.Error(t, err)
}
