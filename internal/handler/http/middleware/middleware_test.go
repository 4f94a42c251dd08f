package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(jwtService *jwt.JWTService, h http.Handler) http.Handler {
	return jwtauth.Verifier(jwtService.JWTAuth())(AuthRequired(h))
}

func TestAuthRequired_StoresActor(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", "1h")
	staffID := "staff-1"
	token, _, err := jwtService.GenerateAccessToken("user-1", "jane@example.com", &staffID, false)
	require.NoError(t, err)

	var got user.Actor
	h := protected(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = ActorFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-1", got.UserID)
	require.NotNil(t, got.StaffID)
	assert.Equal(t, "staff-1", *got.StaffID)
	assert.False(t, got.IsAdmin)
}

func TestAuthRequired_AcceptsCookie(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", "1h")
	token, _, err := jwtService.GenerateAccessToken("admin-1", "boss@example.com", nil, true)
	require.NoError(t, err)

	h := protected(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ := ActorFromContext(r.Context())
		assert.True(t, actor.IsAdmin)
		assert.Nil(t, actor.StaffID)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthRequired_Rejects(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", "1h")
	other := jwt.NewJWTService("other-secret", "1h")
	foreign, _, err := other.GenerateAccessToken("user-1", "jane@example.com", nil, false)
	require.NoError(t, err)

	h := protected(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for name, header := range map[string]string{
		"missing":   "",
		"garbage":   "Bearer not-a-token",
		"signature": "Bearer " + foreign,
	} {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestAdminOnly(t *testing.T) {
	reached := false
	h := AdminOnly("/home")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/approve/leave", nil)
	req = req.WithContext(WithActor(req.Context(), user.Actor{UserID: "user-1"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
	assert.False(t, reached)

	req = httptest.NewRequest(http.MethodPost, "/approve/leave", nil)
	req = req.WithContext(WithActor(req.Context(), user.Actor{UserID: "admin-1", IsAdmin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, reached)
}

func TestAdminOnly_WithoutActor(t *testing.T) {
	h := AdminOnly("/home")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
