package main

import (
	"context"

	"github.com/AnatoleLucet/reactive/cast"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/rs/zerolog"
)

// The simulated platform only logs what the shell asks of it.

type logSurface struct{ log zerolog.Logger }

func newLogSurface(ctx context.Context) *logSurface {
	return &logSurface{*logging.FromContext(logging.WithComponent(ctx, "platform.surface"))}
}

func (s *logSurface) Attach(p cast.StartParams) error {
	s.log.Info().Str("session_id", p.SessionID).Str("app_id", p.AppID).Str("url", p.URL).Msg("attach")
	return nil
}

func (s *logSurface) Detach(sessionID string) {
	s.log.Info().Str("session_id", sessionID).Msg("detach")
}

type logMedia struct{ log zerolog.Logger }

func newLogMedia(ctx context.Context) *logMedia {
	return &logMedia{*logging.FromContext(logging.WithComponent(ctx, "platform.media"))}
}

func (m *logMedia) SetVisible(sessionID string, visible bool) {
	m.log.Info().Str("session_id", sessionID).Bool("visible", visible).Msg("visibility")
}

func (m *logMedia) SetMuted(sessionID string, muted bool) {
	m.log.Info().Str("session_id", sessionID).Bool("muted", muted).Msg("mute")
}

type logAudio struct {
	log  zerolog.Logger
	deny bool

	onChange func(cast.FocusChange)
}

func newLogAudio(ctx context.Context, deny bool) *logAudio {
	return &logAudio{
		log:  *logging.FromContext(logging.WithComponent(ctx, "platform.audio")),
		deny: deny,
	}
}

func (a *logAudio) RequestFocus(req cast.FocusRequest, onChange func(cast.FocusChange)) (cast.FocusResult, error) {
	if a.deny {
		a.log.Info().Stringer("stream", req.Stream).Msg("focus refused")
		return cast.FocusFailed, nil
	}

	a.log.Info().Stringer("stream", req.Stream).Stringer("gain", req.Gain).Msg("focus granted")
	a.onChange = onChange
	return cast.FocusGranted, nil
}

func (a *logAudio) AbandonFocus(req cast.FocusRequest) error {
	a.log.Info().Stringer("stream", req.Stream).Msg("focus abandoned")
	a.onChange = nil
	return nil
}

// notify reports a focus change to the current holder, if any.
func (a *logAudio) notify(change cast.FocusChange) {
	if a.onChange == nil {
		a.log.Warn().Stringer("change", change).Msg("focus change without holder")
		return
	}
	a.onChange(change)
}
