package shippin

import (
	"context"
	"time"
)

// NoticeLevel enumerates supported notice severities.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing message emitted by a session operation.
type Notice struct {
	Level      NoticeLevel
	Message    string
	Role       Role
	OccurredAt time.Time
}

// NoticeSink consumes notices for display or telemetry purposes.
type NoticeSink interface {
	Notify(ctx context.Context, notice Notice) error
}

// NoticeSinkFunc adapts a function to the NoticeSink interface.
type NoticeSinkFunc func(ctx context.Context, notice Notice) error

// Notify implements NoticeSink.
func (f NoticeSinkFunc) Notify(ctx context.Context, notice Notice) error {
	if f == nil {
		return nil
	}
	return f(ctx, notice)
}

type noopNoticeSink struct{}

func (noopNoticeSink) Notify(context.Context, Notice) error {
	return nil
}

func normalizeNoticeSink(s NoticeSink) NoticeSink {
	if s == nil {
		return noopNoticeSink{}
	}
	return s
}
