package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

const (
	SessionIDHeader = "X-Session-Id"

	maxSessionIDLength = 128
)

// SessionID resolves the visitor session from X-Session-Id, minting a new id when
// the header is missing or malformed. The id is echoed on every response.
func SessionID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionIDHeader)
			if !validSessionID(sessionID) {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
