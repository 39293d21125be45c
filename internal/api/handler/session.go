// internal/api/handler/session.go
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"my-money/internal/domain"
)

// SessionHeader carries the client's session id.
const SessionHeader = "X-Session-ID"

type sessionKey struct{}

// SessionMiddleware attaches a domain.Session to every request. The id is
// taken from SessionHeader when it holds a valid UUID and generated
// otherwise; it is echoed back on the response.
func SessionMiddleware(displayName, currency string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := domain.NewSession(displayName, currency)
			if id, err := uuid.Parse(r.Header.Get(SessionHeader)); err == nil {
				sess.ID = id.String()
			}
			w.Header().Set(SessionHeader, sess.ID)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
		})
	}
}

// SessionFrom returns the request's session.
func SessionFrom(ctx context.Context) domain.Session {
	if sess, ok := ctx.Value(sessionKey{}).(domain.Session); ok {
		return sess
	}
	return domain.NewSession("", "")
}
