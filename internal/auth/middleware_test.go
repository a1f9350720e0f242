package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"coldreach/internal/config"
	redisdb "coldreach/internal/redis"
)

func setupTestJWT(secret, jti string, exp time.Duration) string {
	token, _ := GenerateJWT(secret, jti, exp)
	return token
}

func setupUnreachableRedis() *redis.Client {
	cfg := &config.Config{}
	cfg.Redis.Addr = "127.0.0.1:1"
	return redisdb.NewClient(cfg)
}

func setupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(cfg, rdb))
	r.GET("/test", func(c *gin.Context) {
		c.String(200, "OK")
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	r := setupRouter(cfg, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	r := setupRouter(cfg, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.jwt")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for invalid JWT, got %d", w.Code)
	}
}

func TestAuthMiddleware_StatelessAllows(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	r := setupRouter(cfg, nil)

	token := setupTestJWT(cfg.Server.JWTSecret, "token-1", time.Minute)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 without session store, got %d", w.Code)
	}
}

func TestAuthMiddleware_SessionUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	r := setupRouter(cfg, setupUnreachableRedis())

	token := setupTestJWT(cfg.Server.JWTSecret, "token-2", time.Minute)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	// Session lookup fails, token must be rejected
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for session error, got %d", w.Code)
	}
}
