package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nourzaidi/nourfashion-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// Session assigns every storefront visitor a cart session. A client
// that echoes the header back keeps its cart; one that omits it gets a
// fresh session, returned in the response header for it to persist.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
