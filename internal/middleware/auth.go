package middleware

import (
	"strings"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/lib/token"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	bearerScheme = "Bearer"

	// LoginPath is where a 401 sends the client for a new token.
	LoginPath = "/api/v1/auth/login"
)

func unauthorized() *errs.HTTPError {
	return errs.NewUnauthorizedError("Unauthorized", false).WithAction(&errs.Action{
		Type:    errs.ActionTypeRedirect,
		Message: "Log in to get an access token.",
		Value:   LoginPath,
	})
}

// AuthMiddleware verifies the access tokens issued at login.
type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <jwt>"
// header with 401. On success the claims, user id and roles are stored in
// the Echo context and the request logger gains the user.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := GetLogger(c)

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			log.Warn().Str("function", "RequireAuth").Msg("missing bearer token")
			return unauthorized()
		}

		claims, err := auth.tokens.Parse(raw)
		if err != nil {
			log.Warn().Err(err).Str("function", "RequireAuth").Msg("rejected access token")
			return unauthorized().WithMessage("Access token is invalid or expired.")
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRolesKey, claims.Roles)

		SetLogger(c, log.With().
			Str("user_id", claims.Subject).
			Strs("user_roles", claims.Roles).
			Logger())

		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.AddAttribute("user.id", claims.Subject)
		}

		return next(c)
	}
}

// RequireRoles lets the request through when the token grants any of roles,
// and answers 403 otherwise. It must run after RequireAuth.
func (auth *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return unauthorized()
			}

			if !claims.HasAnyRole(roles...) {
				GetLogger(c).Warn().
					Strs("required_roles", roles).
					Msg("user lacks required role")
				return errs.NewForbiddenError("Forbidden", false)
			}

			return next(c)
		}
	}
}
