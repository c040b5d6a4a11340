package shippin

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

const (
	// BadCredentialsNotice deliberately does not reveal whether the email or
	// the password was wrong.
	BadCredentialsNotice = "Invalid email or password."
	// LoginFailedNotice covers transport-level login failures.
	LoginFailedNotice = "Login failed. Please try again."
	// AccountCreatedNotice echoes the address the verification mail went to.
	AccountCreatedNotice = "Account verification email sent to (#%s). Please verify."
	// RegisterFailedNotice carries the backend status for diagnostic display.
	RegisterFailedNotice = "Error:%d. Failed to create account."
	// SubmitFailedNotice is the generic shipment submission failure.
	SubmitFailedNotice = "Failed to submit shipment."
)

type AuthControllerRoutes struct {
	Login          string
	Logout         string
	Register       string
	PasswordReset  string
	Dashboard      string
	SubmitShipment string
}

type AuthControllerViews struct {
	Login          string
	Register       string
	PasswordReset  string
	Dashboard      string
	SubmitShipment string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       *Auther
	Client       *Client
	Sessions     *SessionStore
	Shipments    *ShipmentService
	Routes       *AuthControllerRoutes
	Views        *AuthControllerViews
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuther(auther *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerClient(client *Client) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Client = client
		return c
	}
}

func WithSessions(sessions *SessionStore) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Sessions = sessions
		return c
	}
}

func WithShipments(shipments *ShipmentService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Shipments = shipments
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			Login:          "/:role/login",
			Logout:         "/logout",
			Register:       "/:role/register",
			PasswordReset:  "/:role/forgot-password",
			Dashboard:      "/dashboard",
			SubmitShipment: "/submit-shipment",
		},
		Views: &AuthControllerViews{
			Login:          "login",
			Register:       "register",
			PasswordReset:  "forgot_password",
			Dashboard:      "dashboard",
			SubmitShipment: "submit_shipment",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	if c.Client == nil {
		panic("Missing Client in auth controller...")
	}

	if c.Sessions == nil {
		panic("Missing SessionStore in auth controller...")
	}

	return c
}

// RegisterAuthRoutes wires the role-scoped session views plus the protected
// business views onto the router.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Get(controller.Routes.Login, controller.LoginShow).
		SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.get")

	app.Get(controller.Routes.Register, controller.RegistrationShow).
		SetName("register.get")
	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("register.post")

	app.Get(controller.Routes.PasswordReset, controller.PasswordResetShow).
		SetName("pwd-reset.get")
	app.Post(controller.Routes.PasswordReset, controller.PasswordResetPost).
		SetName("pwd-reset.post")

	app.Get(controller.Routes.Dashboard, controller.Dashboard,
		ProtectedAny(controller.Sessions, RoleSeller)).
		SetName("dashboard.get")

	app.Get(controller.Routes.SubmitShipment, controller.SubmitShipmentShow,
		Protected(controller.Sessions, RoleSeller)).
		SetName("shipment-submit.get")
	app.Post(controller.Routes.SubmitShipment, controller.SubmitShipmentPost,
		Protected(controller.Sessions, RoleSeller)).
		SetName("shipment-submit.post")
}

func (a *AuthController) roleParam(ctx router.Context) (Role, bool) {
	role, ok := ParseRole(ctx.Param("role", ""))
	return role, ok
}

func (a *AuthController) LoginShow(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	if handled, err := HandleVerificationCallback(ctx, role); handled {
		return err
	}

	return ctx.Render(a.Views.Login, router.ViewContext{
		"role":   role,
		"errors": nil,
		"record": nil,
	})
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"role":       role,
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if _, err := a.Auther.Login(ctx.Context(), role, payload.Email, payload.Password); err != nil {
		message := LoginFailedNotice
		if IsAuthError(err) {
			message = BadCredentialsNotice
		}
		return flash.WithError(ctx, router.ViewContext{
			"error_message": message,
		}).Render(a.Views.Login, router.ViewContext{
			"role":   role,
			"record": payload,
			"errors": map[string]string{"authentication": message},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Logged in as " + payload.Email,
	}).Redirect(a.Routes.Dashboard, fiber.StatusSeeOther)
}

func (a *AuthController) LogOut(ctx router.Context) error {
	a.Auther.SignOut(ctx.Context())
	return ctx.Redirect("/", fiber.StatusTemporaryRedirect)
}

func (a *AuthController) RegistrationShow(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	return ctx.Render(a.Views.Register, router.ViewContext{
		"role":   role,
		"errors": map[string]string{},
		"record": nil,
	})
}

// RegistrationSellerPayload is the seller signup form payload
type RegistrationSellerPayload struct {
	Name      string `form:"name" json:"name"`
	Email     string `form:"email" json:"email"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
	Zipcode   int    `form:"zipcode" json:"zipcode"`
}

// RegistrationPartnerPayload is the partner signup form payload. Zipcode
// carries the raw comma-separated list.
type RegistrationPartnerPayload struct {
	Name             string `form:"name" json:"name"`
	Email            string `form:"email" json:"email"`
	Password1        string `form:"password1" json:"password1"`
	Password2        string `form:"password2" json:"password2"`
	Zipcode          string `form:"zipcode" json:"zipcode"`
	HandlingCapacity int    `form:"handling_capacity" json:"handling_capacity"`
}

func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	var response *RegisterResponse
	var err error

	switch role {
	case RolePartner:
		err = a.registerPartner(ctx, &response)
	default:
		err = a.registerSeller(ctx, &response)
	}

	if err != nil {
		if IsValidationError(err) {
			return flash.WithError(ctx, router.ViewContext{
				"error_message": err.Error(),
			}).Render(a.Views.Register, router.ViewContext{
				"role":       role,
				"validation": err.Error(),
			})
		}

		a.Logger.Error("registration failed", "role", role, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": fmt.Sprintf(RegisterFailedNotice, StatusFromError(err)),
		}).Render(a.Views.Register, router.ViewContext{
			"role":   role,
			"errors": []string{err.Error()},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": fmt.Sprintf(AccountCreatedNotice, response.Email),
	}).Redirect(EndpointsFor(role).LoginRoute, fiber.StatusSeeOther)
}

func (a *AuthController) registerSeller(ctx router.Context, response **RegisterResponse) error {
	payload := new(RegistrationSellerPayload)
	if err := ctx.Bind(payload); err != nil {
		return WrapValidationError(err)
	}

	handler := NewRegisterSellerHandler(a.Client).WithLogger(a.Logger)
	return handler.Execute(ctx.Context(), RegisterSellerMessage{
		Name:            payload.Name,
		Email:           payload.Email,
		Password:        payload.Password1,
		ConfirmPassword: payload.Password2,
		Zipcode:         payload.Zipcode,
		OnResponse: func(resp *RegisterResponse) {
			*response = resp
		},
	})
}

func (a *AuthController) registerPartner(ctx router.Context, response **RegisterResponse) error {
	payload := new(RegistrationPartnerPayload)
	if err := ctx.Bind(payload); err != nil {
		return WrapValidationError(err)
	}

	handler := NewRegisterPartnerHandler(a.Client).WithLogger(a.Logger)
	return handler.Execute(ctx.Context(), RegisterPartnerMessage{
		Name:                payload.Name,
		Email:               payload.Email,
		Password:            payload.Password1,
		ConfirmPassword:     payload.Password2,
		Zipcodes:            payload.Zipcode,
		MaxHandlingCapacity: payload.HandlingCapacity,
		OnResponse: func(resp *RegisterResponse) {
			*response = resp
		},
	})
}

func (a *AuthController) PasswordResetShow(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	return ctx.Render(a.Views.PasswordReset, router.ViewContext{
		"role":   role,
		"errors": nil,
	})
}

// PasswordResetRequestPayload holds values for password reset
type PasswordResetRequestPayload struct {
	Email string `form:"email" json:"email"`
}

// Validate will validate the payload
func (r PasswordResetRequestPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
	)
}

func (a *AuthController) PasswordResetPost(ctx router.Context) error {
	role, ok := a.roleParam(ctx)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).SendString("unknown role")
	}

	payload := new(PasswordResetRequestPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("password reset parse payload", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": err.Error(),
		}).Render(a.Views.PasswordReset, router.ViewContext{
			"role":       role,
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	var response *InitializePasswordResetResponse
	handler := NewInitializePasswordResetHandler(a.Client).WithLogger(a.Logger)

	err := handler.Execute(ctx.Context(), InitializePasswordResetMessage{
		Role:  role,
		Email: payload.Email,
		OnResponse: func(resp *InitializePasswordResetResponse) {
			response = resp
		},
	})
	if err != nil {
		a.Logger.Error("password reset request failed", "role", role, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message": "Request failed. Please try again.",
		}).Render(a.Views.PasswordReset, router.ViewContext{
			"role":   role,
			"record": payload,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": response.Notice,
	}).Redirect(EndpointsFor(role).LoginRoute, fiber.StatusSeeOther)
}

func (a *AuthController) Dashboard(ctx router.Context) error {
	session := a.Sessions.Current()
	if session.Identity == nil {
		return ctx.Redirect(EndpointsFor(RoleSeller).LoginRoute, fiber.StatusFound)
	}

	shipments, err := a.Shipments.List(ctx.Context(), session.Identity.Role)
	if err != nil {
		a.Logger.Error("dashboard shipments fetch failed", "error", err)
		return ctx.Render(a.Views.Dashboard, router.ViewContext{
			"identity": session.Identity,
			"errors":   map[string]string{"shipments": "Unable to load shipments."},
		})
	}

	return ctx.Render(a.Views.Dashboard, router.ViewContext{
		"identity":  session.Identity,
		"shipments": shipments,
		"errors":    nil,
	})
}

func (a *AuthController) SubmitShipmentShow(ctx router.Context) error {
	return ctx.Render(a.Views.SubmitShipment, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

// ShipmentFormPayload is the shipment submission form payload
type ShipmentFormPayload struct {
	Content       string  `form:"content" json:"content"`
	Weight        float64 `form:"weight" json:"weight"`
	Destination   int     `form:"destination" json:"destination"`
	CustomerEmail string  `form:"customer_email" json:"customer_email"`
	CustomerPhone string  `form:"customer_phone" json:"customer_phone"`
}

func (a *AuthController) SubmitShipmentPost(ctx router.Context) error {
	payload := new(ShipmentFormPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("shipment parse payload", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	shipment := ShipmentCreate{
		Content:       payload.Content,
		Weight:        payload.Weight,
		Destination:   payload.Destination,
		CustomerEmail: payload.CustomerEmail,
		CustomerPhone: payload.CustomerPhone,
	}

	created, err := a.Shipments.Submit(ctx.Context(), shipment)
	if err != nil {
		message := SubmitFailedNotice
		if IsCapacityError(err) {
			message = NoCapacityNotice
		} else if IsValidationError(err) {
			message = err.Error()
		}

		return flash.WithError(ctx, router.ViewContext{
			"error_message": message,
		}).Render(a.Views.SubmitShipment, router.ViewContext{
			"record": payload,
			"errors": map[string]string{"submission": message},
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": fmt.Sprintf("Shipment submitted successfully (#%s)", created.ID),
	}).Redirect(a.Routes.Dashboard, fiber.StatusSeeOther)
}

// FormatValidationErrorToMap flattens ozzo validation errors for templates.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
