package shippin

import (
	"context"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LatencyNotice is shown before a login call is dispatched. The backend may
// cold-start and take minutes to answer; the notice is a UX accommodation,
// not a correctness signal, and goes out before the result is known.
const LatencyNotice = "Expect ~2 min delay because of free tier hosting. Thanks for your patience."

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// GetEmail returns the identifier
func (r LoginRequest) GetEmail() string {
	return r.Email
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

var _ Authenticator = &Auther{}
var _ LoginPayload = LoginRequest{}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Auther drives the session state machine: it resolves the role's endpoints,
// performs the backend call through the request client, and commits the
// outcome into the session store.
type Auther struct {
	client        *Client
	sessions      *SessionStore
	notices       NoticeSink
	logger        Logger
	latencyNotice string
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(client *Client, sessions *SessionStore) *Auther {
	return &Auther{
		client:        client,
		sessions:      sessions,
		notices:       noopNoticeSink{},
		logger:        defLogger{},
		latencyNotice: LatencyNotice,
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithNoticeSink configures a NoticeSink for emitting user-facing notices.
func (a *Auther) WithNoticeSink(sink NoticeSink) *Auther {
	a.notices = normalizeNoticeSink(sink)
	return a
}

// WithLatencyNotice overrides the advisory shown before login dispatch.
func (a *Auther) WithLatencyNotice(notice string) *Auther {
	a.latencyNotice = notice
	return a
}

// Sessions exposes the store for read access by views and guards.
func (a *Auther) Sessions() *SessionStore {
	return a.sessions
}

// Login authenticates email/password against the role's login endpoint.
// Empty fields fail locally with a validation error and issue no network
// call. The latency advisory is emitted only after validation passes, right
// before dispatch. On failure the session moves to the error status and any
// previously committed identity is preserved.
func (a *Auther) Login(ctx context.Context, role Role, email, password string) (*Identity, error) {
	payload := LoginRequest{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		a.logger.Debug("login rejected locally", "role", role, "error", err)
		return nil, WrapValidationError(err)
	}

	a.emitNotice(ctx, NoticeInfo, a.latencyNotice, role)

	seq := a.sessions.begin()
	endpoints := EndpointsFor(role)

	form := url.Values{
		"username": {email},
		"password": {password},
	}

	resp, err := a.client.PostForm(ctx, endpoints.Login, form, "")
	if err != nil {
		a.sessions.fail(seq, err)
		a.logger.Error("login failed", "role", role, "error", err)
		return nil, err
	}

	token := tokenResponse{}
	if err := resp.Decode(&token); err != nil || token.AccessToken == "" {
		a.sessions.fail(seq, ErrMalformedResponse)
		a.logger.Error("login response missing access token", "role", role)
		return nil, ErrMalformedResponse
	}

	identity := Identity{
		Role:  role,
		Token: token.AccessToken,
		Email: email,
	}

	if !a.sessions.commit(seq, identity) {
		a.logger.Warn("discarding stale login completion", "role", role)
		return nil, ErrLoginSuperseded
	}

	a.emitNotice(ctx, NoticeSuccess, "Logged in as "+email, role)
	return &identity, nil
}

// SignOut clears the session unconditionally. The backend logout call (which
// blacklists the token server-side) is best-effort: its failure never keeps
// the local session alive.
func (a *Auther) SignOut(ctx context.Context) {
	session := a.sessions.Current()

	if session.Identity != nil && session.Identity.Token != "" {
		endpoints := EndpointsFor(session.Identity.Role)
		if _, err := a.client.Do(ctx, http.MethodGet, endpoints.Logout, nil, session.Identity.Token); err != nil {
			a.logger.Warn("backend logout failed", "error", err)
		}
	}

	a.sessions.clear()
}

func (a *Auther) emitNotice(ctx context.Context, level NoticeLevel, message string, role Role) {
	sink := normalizeNoticeSink(a.notices)
	notice := Notice{
		Level:      level,
		Message:    message,
		Role:       role,
		OccurredAt: time.Now(),
	}

	if err := sink.Notify(ctx, notice); err != nil {
		a.logger.Warn("notice sink error: %v", err)
	}
}
