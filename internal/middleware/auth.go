package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/fitprogress/internal/telemetry/tracing"
	"github.com/2beens/fitprogress/pkg"
)

type AuthMiddlewareHandler struct {
	apiToken     string
	allowedPaths map[string]bool
}

// NewAuthMiddlewareHandler protects writes with a bearer token. Reads stay public.
// An empty apiToken disables the check.
func NewAuthMiddlewareHandler(apiToken string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiToken: apiToken,
		allowedPaths: map[string]bool{
			"/":        true,
			"/version": true,
		},
	}
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func (h *AuthMiddlewareHandler) tokenValid(r *http.Request) bool {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.apiToken)) == 1
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiToken == "" || isReadOnly(r.Method) || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if !h.tokenValid(r) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[auth middleware] unauthorized %s %s from %s", r.Method, r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
