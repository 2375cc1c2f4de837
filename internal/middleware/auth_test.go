package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rewards-tracker/internal/auth"
	"rewards-tracker/internal/config"

	"github.com/gin-gonic/gin"
)

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := auth.NewTokenService(config.Config{JWTSecret: "secret", JWTExpiresIn: time.Hour})
	token, err := ts.GenerateToken("dashboard")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	router := gin.New()
	router.Use(NewAuthMiddleware(ts).RequireAuth())
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ClientIDKey))
	})

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if tc.code == http.StatusOK && w.Body.String() != "dashboard" {
				t.Fatalf("expected client id in context, got %q", w.Body.String())
			}
		})
	}
}
