package shippin

import (
	"context"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// NoCapacityNotice is shown when the backend answers 503 on a shipment
// submission: every delivery partner serving the destination is at capacity.
const NoCapacityNotice = "No delivery partners are available at this time."

// defaultPhoneRegion is used to parse customer phone numbers entered without
// a country prefix.
const defaultPhoneRegion = "IN"

// ShipmentCreate is the payload for submitting a new shipment.
type ShipmentCreate struct {
	Content       string  `json:"content"`
	Weight        float64 `json:"weight"`
	Destination   int     `json:"destination"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone,omitempty"`
}

// Validate will validate the payload
func (s ShipmentCreate) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Content, validation.Required, validation.Length(1, 500)),
		validation.Field(&s.Weight, validation.Required, validation.Min(1.0), validation.Max(25.0)),
		validation.Field(&s.Destination, validation.Required, validation.Min(1)),
		validation.Field(&s.CustomerEmail, validation.Required, is.Email),
		validation.Field(&s.CustomerPhone, validation.By(validatePhone)),
	)
}

func validatePhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(phone, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return errors.New("must be a valid phone number")
	}
	return nil
}

// Shipment mirrors the backend read schema.
type Shipment struct {
	ID                uuid.UUID `json:"id"`
	Content           string    `json:"content"`
	Weight            float64   `json:"weight"`
	Destination       int       `json:"destination"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
}

// Account mirrors the backend profile schema. The partner-only fields stay
// zero for sellers.
type Account struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Zipcode             int       `json:"zipcode,omitempty"`
	ServiceableZipcodes []int     `json:"serviceable_zipcodes,omitempty"`
	MaxHandlingCapacity int       `json:"max_handling_capacity,omitempty"`
}

// ShipmentService performs the authenticated business operations. Every call
// pulls the current token from the session store per request; an anonymous
// session sends no authorization header and lets the server reject the call.
type ShipmentService struct {
	client   *Client
	sessions SessionReader
	logger   Logger
}

func NewShipmentService(client *Client, sessions SessionReader) *ShipmentService {
	return &ShipmentService{
		client:   client,
		sessions: sessions,
		logger:   defLogger{},
	}
}

func (s *ShipmentService) WithLogger(logger Logger) *ShipmentService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Submit creates a new shipment. A 503 from the backend means no delivery
// partner has capacity for the destination and surfaces as a capacity error,
// distinct from credential rejections and generic failures.
func (s *ShipmentService) Submit(ctx context.Context, shipment ShipmentCreate) (*Shipment, error) {
	if err := shipment.Validate(); err != nil {
		return nil, WrapValidationError(err)
	}

	resp, err := s.client.Do(ctx, http.MethodPost, "/shipment", shipment, s.sessions.Token())
	if err != nil {
		if IsCapacityError(err) {
			s.logger.Warn("shipment rejected, no partner capacity", "destination", shipment.Destination)
		} else {
			s.logger.Error("shipment submission failed", "error", err)
		}
		return nil, err
	}

	created := &Shipment{}
	if err := resp.Decode(created); err != nil {
		return nil, err
	}

	return created, nil
}

// List fetches the shipments visible to the given role.
func (s *ShipmentService) List(ctx context.Context, role Role) ([]Shipment, error) {
	resp, err := s.client.Get(ctx, EndpointsFor(role).Shipments, s.sessions.Token())
	if err != nil {
		s.logger.Error("shipment list failed", "role", role, "error", err)
		return nil, err
	}

	shipments := []Shipment{}
	if err := resp.Decode(&shipments); err != nil {
		return nil, err
	}

	return shipments, nil
}

// Profile fetches the signed-in account for the given role.
func (s *ShipmentService) Profile(ctx context.Context, role Role) (*Account, error) {
	resp, err := s.client.Get(ctx, EndpointsFor(role).Profile, s.sessions.Token())
	if err != nil {
		s.logger.Error("profile fetch failed", "role", role, "error", err)
		return nil, err
	}

	account := &Account{}
	if err := resp.Decode(account); err != nil {
		return nil, err
	}

	return account, nil
}
