package shippin

import (
	"net/http"

	"github.com/goliatone/go-router"
)

// Protected gates a view behind an authenticated session holding the given
// role. A partner visiting a seller-only view is treated exactly like an
// anonymous visitor: both are redirected to the seller login. The decision is
// made once per navigation; there is no retry.
func Protected(sessions *SessionStore, role Role) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if sessions.HasRole(role) {
				return next(ctx)
			}
			return redirectToLogin(ctx, role)
		}
	}
}

// ProtectedAny admits any authenticated session. Views shared by both roles
// (the dashboard) use it; anonymous visitors are sent to the fallback role's
// login.
func ProtectedAny(sessions *SessionStore, fallback Role) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if sessions.IsAuthenticated() {
				return next(ctx)
			}
			return redirectToLogin(ctx, fallback)
		}
	}
}

func redirectToLogin(ctx router.Context, role Role) error {
	statusCode := http.StatusSeeOther
	if ctx.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}
	return ctx.Redirect(EndpointsFor(role).LoginRoute, statusCode)
}
