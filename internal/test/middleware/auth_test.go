package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"cardmock-backend/internal/config"
	"cardmock-backend/internal/middleware"
)

func authRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return tokenString
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	router := authRouter(&config.Config{AuthJWTSecret: "test-secret"})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := authRouter(&config.Config{AuthJWTSecret: "test-secret"})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	router := authRouter(&config.Config{AuthJWTSecret: "the-real-secret"})
	tokenString := signToken(t, "a-different-secret", jwt.MapClaims{
		"sub":    "user_123",
		"org_id": "org_456",
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MissingOrgClaim(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}
	router := authRouter(cfg)
	tokenString := signToken(t, cfg.AuthJWTSecret, jwt.MapClaims{
		"sub": "user_123",
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing organization")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AuthJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}

	tokenString := signToken(t, cfg.AuthJWTSecret, jwt.MapClaims{
		"sub":      "user_123",
		"name":     "Dana Reviewer",
		"org_id":   "org_456",
		"org_role": "admin",
	})

	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		p, ok := middleware.PrincipalFrom(c)
		assert.True(t, ok)
		assert.Equal(t, "user_123", p.UserID)
		assert.Equal(t, "Dana Reviewer", p.UserName)
		assert.Equal(t, "org_456", p.OrgID)
		assert.Equal(t, "admin", p.Role)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_DefaultsRoleToMember(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{AuthJWTSecret: "test-secret-key-for-jwt-signing-must-be-long-enough"}

	tokenString := signToken(t, cfg.AuthJWTSecret, jwt.MapClaims{
		"sub":    "user_123",
		"org_id": "org_456",
	})

	router := gin.New()
	router.Use(middleware.AuthMiddleware(cfg))
	router.GET("/test", func(c *gin.Context) {
		p, _ := middleware.PrincipalFrom(c)
		assert.Equal(t, "member", p.Role)
		// Without a name claim the display name falls back to the user id.
		assert.Equal(t, "user_123", p.UserName)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_ForbidsNonAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user_123")
		c.Set(middleware.OrgIDKey, "org_456")
		c.Set(middleware.RoleKey, "member")
	})
	router.POST("/admin-only", middleware.RequireRole(middleware.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("POST", "/admin-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestRequireRole_AllowsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user_123")
		c.Set(middleware.OrgIDKey, "org_456")
		c.Set(middleware.RoleKey, "admin")
	})
	router.POST("/admin-only", middleware.RequireRole(middleware.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req, _ := http.NewRequest("POST", "/admin-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
