package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"binder.org/internal/auth"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr string
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", ""},
		{"case insensitive scheme", "bearer abc.def.ghi", "abc.def.ghi", ""},
		{"empty header", "", "", "missing bearer token"},
		{"blank token", "Bearer   ", "", "missing bearer token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", "invalid authorization scheme"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractBearerToken(tc.header)
			if tc.wantErr != "" {
				if err == nil || err.Error() != tc.wantErr {
					t.Fatalf("err = %v, want %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("token = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	for _, path := range []string{"/register", "/login", "/healthz", "/readyz", "/metrics", "/v1/info", "/"} {
		if !isPublicPath(path) {
			t.Errorf("%s should be public", path)
		}
	}
	for _, path := range []string{"/cards", "/cards/tw-001", "/admin/reset-password", "/registered"} {
		if isPublicPath(path) {
			t.Errorf("%s should not be public", path)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/reset-password", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if rec.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Errorf("WWW-Authenticate = %q", rec.Header().Get("WWW-Authenticate"))
		}
	})

	t.Run("non-admin identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/reset-password", nil)
		ctx := auth.ContextWithIdentity(req.Context(), auth.Identity{UserID: "u1"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if got := rec.Header().Get("WWW-Authenticate"); !strings.Contains(got, "insufficient_scope") {
			t.Errorf("WWW-Authenticate = %q", got)
		}
	})

	t.Run("admin identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/reset-password", nil)
		ctx := auth.ContextWithIdentity(req.Context(), auth.Identity{UserID: "u1", IsAdmin: true})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}

func TestWithAuthAttachesIdentity(t *testing.T) {
	t.Setenv("BINDER_AUTH_SECRET", "test-secret")
	auth.ResetSecretForTests()
	t.Cleanup(auth.ResetSecretForTests)

	token, err := auth.GenerateToken("u1", true, auth.TokenTTL)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	api := &API{}
	var got auth.Identity
	handler := api.withAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cards", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != "u1" || !got.IsAdmin {
		t.Errorf("identity = %+v", got)
	}
}
