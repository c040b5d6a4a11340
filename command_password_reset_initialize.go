package shippin

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// ResetRequestedNotice is reported for every accepted reset request. The
// wording never varies with account existence so the endpoint cannot be used
// to probe which emails are registered.
const ResetRequestedNotice = "If an account with that email exists, a reset link has been sent."

type InitializePasswordResetMessage struct {
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	OnResponse func(resp *InitializePasswordResetResponse) `json:"-"`
}

func (m InitializePasswordResetMessage) Type() string { return "user.password_reset" }

// Validate will validate the payload
func (m InitializePasswordResetMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(
			&m.Email,
			validation.Required,
			is.Email,
		),
	)
}

type InitializePasswordResetResponse struct {
	Notice  string
	Success bool
}

type InitializePasswordResetHandler struct {
	client *Client
	logger Logger
}

func NewInitializePasswordResetHandler(client *Client) *InitializePasswordResetHandler {
	return &InitializePasswordResetHandler{client: client, logger: defLogger{}}
}

func (h *InitializePasswordResetHandler) WithLogger(logger Logger) *InitializePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *InitializePasswordResetHandler) Execute(ctx context.Context, event InitializePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset initialization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *InitializePasswordResetHandler) execute(ctx context.Context, event InitializePasswordResetMessage) error {
	if err := event.Validate(); err != nil {
		return WrapValidationError(err)
	}

	path := EndpointsFor(event.Role).ForgotPassword + "?email=" + url.QueryEscape(event.Email)

	if _, err := h.client.Do(ctx, http.MethodGet, path, nil, ""); err != nil {
		h.logger.Error("password reset request failed", "role", event.Role, "error", err)
		return err
	}

	if event.OnResponse != nil {
		event.OnResponse(&InitializePasswordResetResponse{
			Notice:  ResetRequestedNotice,
			Success: true,
		})
	}

	return nil
}
