package shippin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// VerifiedQueryParam is the one-shot query parameter the backend appends to
// the login redirect after an email-verification attempt.
const VerifiedQueryParam = "verified"

const (
	// EmailVerifiedNotice confirms a successful verification.
	EmailVerifiedNotice = "Email verified successfully! Please login."
	// VerificationFailedNotice reports an expired or invalid link.
	VerificationFailedNotice = "Verification link expired or invalid. Please try registering again."
)

// HandleVerificationCallback reacts to the `verified` query parameter on a
// role's login view. The parameter is consumed exactly once: both branches
// redirect to the clean login URL so a re-render cannot re-show the notice.
// Any other value, or its absence, is a no-op and handled stays false.
func HandleVerificationCallback(ctx router.Context, role Role) (handled bool, err error) {
	loginRoute := EndpointsFor(role).LoginRoute

	switch ctx.Query(VerifiedQueryParam) {
	case "true":
		return true, flash.WithSuccess(ctx, router.ViewContext{
			"system_message": EmailVerifiedNotice,
		}).Redirect(loginRoute, fiber.StatusSeeOther)
	case "false":
		return true, flash.WithError(ctx, router.ViewContext{
			"error_message": VerificationFailedNotice,
		}).Redirect(loginRoute, fiber.StatusSeeOther)
	}

	return false, nil
}
