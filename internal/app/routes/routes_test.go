package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekaya/clubsphere/internal/app/controllers"
	"github.com/emrekaya/clubsphere/internal/app/models"
	"github.com/emrekaya/clubsphere/internal/middleware"
	"github.com/emrekaya/clubsphere/internal/pkg/auth"
	"github.com/emrekaya/clubsphere/internal/pkg/websocket"
)

func newRouterFixture() (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "clubsphere.test",
	})

	router := gin.New()
	SetupRouter(
		router,
		&controllers.AuthController{},
		&controllers.EventController{},
		&controllers.RegistrationController{},
		&controllers.NotificationController{},
		&controllers.MemberController{},
		&controllers.ChatController{},
		&controllers.AdminController{},
		&websocket.Handler{},
		middleware.NewAuthMiddleware(jwtService),
	)
	return router, jwtService
}

func memberToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	accessToken, _, _, _, err := jwtService.GenerateTokenPair(&models.Member{
		ID:       42,
		Email:    "jane@clubsphere.app",
		RoleType: models.RoleMember,
	})
	require.NoError(t, err)
	return accessToken
}

func TestEventManagementRequiresAdmin(t *testing.T) {
	router, jwtService := newRouterFixture()
	token := memberToken(t, jwtService)

	cases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/events"},
		{"PUT", "/api/v1/events/1"},
		{"DELETE", "/api/v1/events/1"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusForbidden, recorder.Code)
		})
	}
}

func TestEventManagementRequiresAuthentication(t *testing.T) {
	router, _ := newRouterFixture()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/events", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
