package middleware

import (
	"context"
	"errors"
	"net/http"
	"parking/infras/jwt"
	"parking/infras/otel"
	userModel "parking/internal/domains/user/model"
	"parking/permissions"
	"parking/shared/constant"
	"parking/shared/failure"
	"parking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errTokenRevoked = failure.Unauthorized("Token has been revoked")

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	denylist   jwt.Denylist
	otel       otel.Otel
	permission *permissions.PermissionData
}

// NewAuthRoleMiddleware creates a new middleware instance
func NewAuthRoleMiddleware(jwtService jwt.JWT, denylist jwt.Denylist, otel otel.Otel, permissions *permissions.PermissionData) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		denylist:   denylist,
		otel:       otel,
		permission: permissions,
	}
}

func (m *authRoleImpl) findPermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil || m.permission == nil {
		return constant.Empty, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}

var tokenErrorMessages = map[error]string{
	jwt.ErrExpiredToken: "Token has expired",
	jwt.ErrInvalidToken: "Invalid token",
	jwt.ErrInvalidClaim: "Invalid token claims",
}

// authenticate resolves the Authorization header to the claims of a live access token.
func (m *authRoleImpl) authenticate(ctx context.Context, header string) (*jwt.Claims, error) {
	if header == constant.Empty {
		return nil, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(header)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
	if err != nil {
		for target, message := range tokenErrorMessages {
			if errors.Is(err, target) {
				return nil, failure.Unauthorized(message)
			}
		}

		return nil, failure.Unauthorized("Token validation failed")
	}

	if claims.UserID == constant.Empty || claims.Username == constant.Empty {
		log.Error().Str("token_id", claims.TokenID).Msg("access token without user id or username")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check token denylist")

		return nil, failure.InternalError(err)
	}

	if revoked {
		return nil, errTokenRevoked
	}

	return claims, nil
}

func withCaller(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	if claims.ExpiresAt != nil {
		ctx = context.WithValue(ctx, constant.ContextKeyTokenExp, claims.ExpiresAt.Time)
	}

	return ctx
}

// Auth validates the bearer access token and puts the caller into the request context.
// Routes marked skip in the permissions table are public.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		path, permission := m.findPermission(request)
		if permission.Skip {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		claims, err := m.authenticate(ctx, request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(withCaller(request.Context(), claims)))
	})
}

// RBAC checks the caller's role against the roles allowed for the route.
// A refused caller is pointed at its own dashboard. Requires prior authentication via Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.findPermission(request)
		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithErrorRedirect(writer, err, userModel.Role(userRole).Dashboard())

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
