package middleware

import (
	"net/http"
	"sync"

	"github.com/2beens/bodix/internal/telemetry/tracing"
	"github.com/2beens/bodix/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AppTokenHeader = "X-BODIX-TOKEN"

// AuthMiddlewareHandler lets reads through and requires the app secret for
// everything that changes state.
type AuthMiddlewareHandler struct {
	appSecretHash string

	// tokens already checked against the bcrypt hash
	verifiedMu sync.RWMutex
	verified   map[string]bool
}

func NewAuthMiddlewareHandler(appSecretHash string) *AuthMiddlewareHandler {
	if appSecretHash == "" {
		log.Warn("app secret hash not set, all mutating requests will be refused")
	}
	return &AuthMiddlewareHandler{
		appSecretHash: appSecretHash,
		verified:      make(map[string]bool),
	}
}

func (h *AuthMiddlewareHandler) tokenValid(token string) bool {
	h.verifiedMu.RLock()
	ok := h.verified[token]
	h.verifiedMu.RUnlock()
	if ok {
		return true
	}

	if !pkg.CheckSecretHash(token, h.appSecretHash) {
		return false
	}

	h.verifiedMu.Lock()
	h.verified[token] = true
	h.verifiedMu.Unlock()
	return true
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			switch r.Method {
			case http.MethodOptions:
				w.Header().Add("Allow", "GET, POST, PUT, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			case http.MethodGet, http.MethodHead:
				// reads and websocket upgrades
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(AppTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if !h.tokenValid(authToken) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid token] [auth middleware] unauthorized %s %s from %s", r.Method, r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-auth-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
