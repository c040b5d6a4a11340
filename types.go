package shippin

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetAuthScheme() string
	GetLatencyNotice() string
	GetDebug() bool
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, role Role, email, password string) (*Identity, error)
	SignOut(ctx context.Context)
}

// LoginPayload is the minimal contract a login form payload satisfies.
type LoginPayload interface {
	GetEmail() string
	GetPassword() string
}

// SessionReader is the read-only view of the session other components get.
type SessionReader interface {
	Current() Session
	IsAuthenticated() bool
	HasRole(role Role) bool
	Token() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SHIPPIN "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SHIPPIN "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SHIPPIN "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SHIPPIN "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
