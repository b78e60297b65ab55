package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostafakamar/hafla-store/pkg/jwt"
)

func newProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/protected")
	group.Use(JWTAuthMiddleware())
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("", func(c *gin.Context) {
		id, name, role := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "name": name, "role": role})
	})

	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := jwt.GenerateToken("usr-1", "Karim", "admin", time.Hour)
	require.NoError(t, err)

	w := get(newProtectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "usr-1")
	assert.Contains(t, w.Body.String(), "admin")
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := get(newProtectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	w := get(newProtectedRouter(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := jwt.GenerateToken("usr-1", "Karim", "admin", -time.Minute)
	require.NoError(t, err)

	w := get(newProtectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Expired token")
}

func TestRoleAuthMiddlewareAllowsListedRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := jwt.GenerateToken("usr-2", "Salma", "staff", time.Hour)
	require.NoError(t, err)

	w := get(newProtectedRouter("admin", "staff"), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleAuthMiddlewareRejectsOtherRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := jwt.GenerateToken("usr-3", "Mona", "customer", time.Hour)
	require.NoError(t, err)

	w := get(newProtectedRouter("admin"), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
