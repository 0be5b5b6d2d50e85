package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/model"
)

func TestRequireRole(t *testing.T) {
	gate, _ := newTestGate(t)

	e := echo.New()
	e.GET("/v1/gyms-only", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, Auth(gate), RequireRole(model.RoleGym))

	gymPair, err := gate.Login(context.Background(), "gym-1", "user-1", model.RoleGym)
	if err != nil {
		t.Fatalf("login gym: %v", err)
	}
	trainerPair, err := gate.Login(context.Background(), "trainer-1", "user-2", model.RoleTrainer)
	if err != nil {
		t.Fatalf("login trainer: %v", err)
	}

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"allowed role", gymPair.Access.Token, http.StatusOK},
		{"wrong role", trainerPair.Access.Token, http.StatusForbidden},
		{"no identity", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/gyms-only", nil)
		if tc.token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tc.token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}
