package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, key string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id":   "u1",
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestJWT(t *testing.T) {
	t.Setenv("JWT_ACCESS_KEY", "test-access-key")

	app := fiber.New()
	app.Use(JWT())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	valid := signedToken(t, "test-access-key")
	forged := signedToken(t, "wrong-key")

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "header token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "query token", query: valid, wantStatus: http.StatusOK},
		{name: "no token", wantStatus: http.StatusBadRequest},
		{name: "malformed token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/ping"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				var body struct {
					Status string `json:"status"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("decoding error envelope: %v", err)
				}
				if body.Status != "error" {
					t.Errorf("envelope status = %q, want error", body.Status)
				}
			}
		})
	}
}
