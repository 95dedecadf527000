package cast

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams    = errors.New("invalid start params")
	ErrUnknownSession   = errors.New("unknown session")
	ErrFocusDenied      = errors.New("audio focus denied")
	ErrNoActivity       = errors.New("no running activity")
	ErrUnknownLifecycle = errors.New("unknown lifecycle event")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIntent indicates a malformed or undeliverable intent.
	KindIntent
	// KindAudio indicates an audio focus failure.
	KindAudio
	// KindSurface indicates the rendering surface could not be attached.
	KindSurface
	// KindLaunch indicates the launcher failed to deliver an intent.
	KindLaunch
	// KindConfig indicates an invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindIntent:
		return "intent"
	case KindAudio:
		return "audio"
	case KindSurface:
		return "surface"
	case KindLaunch:
		return "launch"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a structured error raised by the cast shell.
type Error struct {
	// Op is the operation that failed (e.g. "ContentWindow.attach").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// SessionID is the session involved, if any.
	SessionID string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("%s [%s] session=%s: %v", e.Op, e.Kind, e.SessionID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
