package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/leave-backend-go/internal/handler/http/response"
)

// AdminOnly sends non-admin callers to homePath with a 302. Nothing behind it runs.
func AdminOnly(homePath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if !actor.IsAdmin {
				slog.Info("Admin route refused", "path", r.URL.Path, "user_id", actor.UserID)
				response.Redirect(w, homePath, user.ErrAdminPrivilegeRequired.Error(), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
