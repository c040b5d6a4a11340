package shippin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

type RegisterPartnerMessage struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"-"`
	MaxHandlingCapacity int    `json:"max_handling_capacity"`
	// Zipcodes is the raw comma-separated form input; the parsed list goes
	// out on the wire.
	Zipcodes            string                       `json:"-"`
	ServiceableZipcodes []int                        `json:"serviceable_zipcodes"`
	OnResponse          func(resp *RegisterResponse) `json:"-"`
}

func (m RegisterPartnerMessage) Type() string { return "partner.register" }

// Validate will validate the payload
func (m RegisterPartnerMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Email, validation.Required, is.Email),
		validation.Field(&m.Password, validation.Required, validation.Length(5, 100)),
		validation.Field(
			&m.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(m.Password)),
		),
		validation.Field(&m.MaxHandlingCapacity, validation.Required, validation.Min(1)),
		validation.Field(&m.Zipcodes, validation.Required, validation.By(validateZipcodeList)),
	)
}

// ParseZipcodes turns a comma-separated zipcode list into integers. Tokens
// are trimmed; empty and non-numeric tokens are discarded rather than
// reported, matching the signup form behavior.
func ParseZipcodes(raw string) []int {
	zipcodes := []int{}

	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		zipcode, err := strconv.Atoi(token)
		if err != nil || zipcode <= 0 {
			continue
		}
		zipcodes = append(zipcodes, zipcode)
	}

	return zipcodes
}

// validateZipcodeList requires at least one valid entry. Zero valid zipcodes
// is a validation failure, never silently defaulted.
func validateZipcodeList(value any) error {
	raw, _ := value.(string)
	if len(ParseZipcodes(raw)) < 1 {
		return errors.New("must contain at least one valid zipcode")
	}
	return nil
}

type RegisterPartnerHandler struct {
	client *Client
	logger Logger
}

func NewRegisterPartnerHandler(client *Client) *RegisterPartnerHandler {
	return &RegisterPartnerHandler{client: client, logger: defLogger{}}
}

func (h *RegisterPartnerHandler) WithLogger(logger Logger) *RegisterPartnerHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterPartnerHandler) Execute(ctx context.Context, event RegisterPartnerMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during partner registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterPartnerHandler) execute(ctx context.Context, event RegisterPartnerMessage) error {
	if err := event.Validate(); err != nil {
		return WrapValidationError(err)
	}

	event.ServiceableZipcodes = ParseZipcodes(event.Zipcodes)

	resp, err := h.client.Do(ctx, http.MethodPost, EndpointsFor(RolePartner).Signup, event, "")
	if err != nil {
		h.logger.Error("partner signup failed", "error", err)
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
