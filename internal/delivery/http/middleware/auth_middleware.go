package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/service"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	SessionIDKey contextKey = "session_id"
)

// LoginPath is where guarded routes send callers without a session.
const LoginPath = "/staff/login/"

type AuthMiddleware struct {
	jwtService   *jwt.JWTService
	sessionStore service.SessionStore
	cookieName   string
	log          *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionStore service.SessionStore, cookieName string, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		sessionStore: sessionStore,
		cookieName:   cookieName,
		log:          log,
	}
}

// Authenticate attaches the session principal to the request context when the
// caller presents a valid session. Requests without one pass through
// anonymously; RequirePrincipal decides what is protected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.extractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		kind := entity.PrincipalKind(claims.PrincipalKind)
		principalID, err := claims.PrincipalID()
		if err != nil || !kind.IsValid() {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := m.sessionStore.Get(r.Context(), kind, principalID, claims.SessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				next.ServeHTTP(w, r)
				return
			}
			m.log.Warnf("Failed to load session: %+v", err)
			response.InternalServerError(w, "Failed to validate session")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal, claims.SessionID)))
	})
}

// extractToken reads the session cookie first, then a Bearer header.
func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RequirePrincipal guards a route for the given principal kinds. Callers
// without a session are redirected to the login page; callers holding a
// session of another kind get 403.
func RequirePrincipal(kinds ...entity.PrincipalKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Redirect(w, LoginPath, "Please log in to continue")
				return
			}

			for _, kind := range kinds {
				if principal.Kind == kind {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequirePrincipal(entity.PrincipalDoctor)(next)
}

// RequireStaff is a convenience middleware for back-office endpoints
func RequireStaff(next http.Handler) http.Handler {
	return RequirePrincipal(entity.PrincipalStaff)(next)
}

// RequireClinician lets either doctors or staff through
func RequireClinician(next http.Handler) http.Handler {
	return RequirePrincipal(entity.PrincipalDoctor, entity.PrincipalStaff)(next)
}

// WithPrincipal stores the authenticated principal and its session ID.
func WithPrincipal(ctx context.Context, principal *entity.Principal, sessionID string) context.Context {
	ctx = context.WithValue(ctx, PrincipalKey, principal)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetPrincipalFromContext extracts the session principal from context
func GetPrincipalFromContext(ctx context.Context) (*entity.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*entity.Principal)
	return principal, ok && principal != nil
}

// GetSessionIDFromContext extracts the session ID from context
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}
