package middleware

import (
	"net/http"
	"time"

	"sarychdb/infrastructure/users"
	"sarychdb/pkg/common"
	apperrors "sarychdb/pkg/errors"
)

// Authenticate checks the username/password headers on every request
// against the user registry (spec §6). Unlike the teacher's JWT
// middleware, there is no token to validate — credentials travel on
// every request and are checked directly against the bcrypt-hashed
// registry entry.
func Authenticate(registry *users.Registry, errHandler *apperrors.Handler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			if start2, ok := common.GetStartTime(r.Context()); ok {
				start = start2
			}

			username := r.Header.Get("username")
			password := r.Header.Get("password")

			if username == "" || password == "" {
				errHandler.Handle(w, r, start, apperrors.NewAuthFailed("missing username or password header"))
				return
			}

			if err := registry.Authenticate(username, password); err != nil {
				errHandler.Handle(w, r, start, err)
				return
			}

			ctx := common.WithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
