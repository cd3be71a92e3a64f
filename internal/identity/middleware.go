package identity

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"littlelemon/internal/httpx"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Caller, error)
}

// Middleware resolves the Authorization header into a Caller. Requests
// without the header continue as anonymous and are rejected by the policy
// where authentication is required; a header with an unknown token is
// rejected here.
func Middleware(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present := TokenFromHeader(r.Header.Get("Authorization"))
			if !present {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				traceID := httpx.TraceID(r.Context())
				httpx.WriteError(w, logger.With(zap.String("traceId", traceID)), traceID, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// TokenFromHeader accepts "Token <t>" and "Bearer <t>".
func TokenFromHeader(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
