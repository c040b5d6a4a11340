package shippin

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// RegisterResponse reports the outcome of a signup call. Email echoes the
// address the backend sent the verification message to; registration never
// authenticates the caller.
type RegisterResponse struct {
	Email   string
	Status  int
	Success bool
}

type RegisterSellerMessage struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Zipcode         int    `json:"zipcode"`
	OnResponse      func(resp *RegisterResponse) `json:"-"`
}

func (m RegisterSellerMessage) Type() string { return "seller.register" }

// Validate will validate the payload
func (m RegisterSellerMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Email, validation.Required, is.Email),
		validation.Field(&m.Password, validation.Required, validation.Length(5, 100)),
		validation.Field(
			&m.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(m.Password)),
		),
		validation.Field(&m.Zipcode, validation.Required, validation.Min(1)),
	)
}

type RegisterSellerHandler struct {
	client *Client
	logger Logger
}

func NewRegisterSellerHandler(client *Client) *RegisterSellerHandler {
	return &RegisterSellerHandler{client: client, logger: defLogger{}}
}

func (h *RegisterSellerHandler) WithLogger(logger Logger) *RegisterSellerHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterSellerHandler) Execute(ctx context.Context, event RegisterSellerMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during seller registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterSellerHandler) execute(ctx context.Context, event RegisterSellerMessage) error {
	if err := event.Validate(); err != nil {
		return WrapValidationError(err)
	}

	resp, err := h.client.Do(ctx, http.MethodPost, EndpointsFor(RoleSeller).Signup, event, "")
	if err != nil {
		h.logger.Error("seller signup failed", "error", err)
		return err
	}

	result := &RegisterResponse{Email: event.Email, Status: resp.Status, Success: true}

	confirmation := struct {
		Email string `json:"email"`
	}{}
	if err := resp.Decode(&confirmation); err == nil && confirmation.Email != "" {
		result.Email = confirmation.Email
	}

	if event.OnResponse != nil {
		event.OnResponse(result)
	}

	return nil
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("values must match")
		}
		return nil
	}
}
