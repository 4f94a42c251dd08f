package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService  auth.AuthService
	secureCookie bool
}

func NewAuthHandler(authService auth.AuthService, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := decodeBody(w, r, &loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// The verifier also reads the "jwt" cookie, so browser form flows work without a header.
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    tokenResponse.AccessToken,
		Path:     "/",
		Expires:  time.Unix(tokenResponse.AccessTokenExpiresIn, 0),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("User logged in successfully", "user_id", tokenResponse.UserID)
	response.Created(w, "User logged in successfully", tokenResponse)
}
