package cast

import (
	"context"
	"fmt"
	"strings"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/rs/zerolog"
)

type StreamType int

const (
	StreamMusic StreamType = iota
	StreamAlarm
	StreamNotification
	StreamVoiceCall
)

func (s StreamType) String() string {
	switch s {
	case StreamMusic:
		return "music"
	case StreamAlarm:
		return "alarm"
	case StreamNotification:
		return "notification"
	case StreamVoiceCall:
		return "voice_call"
	default:
		return fmt.Sprintf("stream(%d)", int(s))
	}
}

func ParseStreamType(s string) (StreamType, error) {
	for _, stream := range []StreamType{StreamMusic, StreamAlarm, StreamNotification, StreamVoiceCall} {
		if strings.EqualFold(s, stream.String()) {
			return stream, nil
		}
	}
	return 0, fmt.Errorf("unknown audio stream %q", s)
}

type FocusGain int

const (
	GainFull FocusGain = iota
	GainTransient
	GainTransientMayDuck
)

func (g FocusGain) String() string {
	switch g {
	case GainFull:
		return "full"
	case GainTransient:
		return "transient"
	case GainTransientMayDuck:
		return "transient_may_duck"
	default:
		return fmt.Sprintf("gain(%d)", int(g))
	}
}

func ParseFocusGain(s string) (FocusGain, error) {
	for _, gain := range []FocusGain{GainFull, GainTransient, GainTransientMayDuck} {
		if strings.EqualFold(s, gain.String()) {
			return gain, nil
		}
	}
	return 0, fmt.Errorf("unknown audio focus gain %q", s)
}

// FocusRequest is what the shell asks the audio system for.
type FocusRequest struct {
	Stream StreamType
	Gain   FocusGain
}

// FocusResult is the synchronous answer to a focus request.
type FocusResult int

const (
	FocusGranted FocusResult = iota
	FocusFailed
	// FocusDelayed means the focus will be granted later through a FocusChangeGain.
	FocusDelayed
)

// FocusChange is an asynchronous focus notification from the audio system.
type FocusChange int

const (
	FocusChangeGain FocusChange = iota
	FocusChangeLoss
	FocusChangeLossTransient
	FocusChangeLossTransientCanDuck
)

func (c FocusChange) String() string {
	switch c {
	case FocusChangeGain:
		return "gain"
	case FocusChangeLoss:
		return "loss"
	case FocusChangeLossTransient:
		return "loss_transient"
	case FocusChangeLossTransientCanDuck:
		return "loss_transient_can_duck"
	default:
		return fmt.Sprintf("change(%d)", int(c))
	}
}

func ParseFocusChange(s string) (FocusChange, error) {
	for _, change := range []FocusChange{FocusChangeGain, FocusChangeLoss, FocusChangeLossTransient, FocusChangeLossTransientCanDuck} {
		if strings.EqualFold(s, change.String()) {
			return change, nil
		}
	}
	return 0, fmt.Errorf("unknown audio focus change %q", s)
}

// FocusLoss is why the shell does not hold audio focus while it wants it.
type FocusLoss int

const (
	FocusDenied FocusLoss = iota
	FocusLossPermanent
	FocusLossTransient
	FocusLossTransientCanDuck
)

func (l FocusLoss) String() string {
	switch l {
	case FocusDenied:
		return "denied"
	case FocusLossPermanent:
		return "permanent"
	case FocusLossTransient:
		return "transient"
	case FocusLossTransientCanDuck:
		return "transient_can_duck"
	default:
		return fmt.Sprintf("loss(%d)", int(l))
	}
}

func (c FocusChange) loss() (FocusLoss, bool) {
	switch c {
	case FocusChangeLoss:
		return FocusLossPermanent, true
	case FocusChangeLossTransient:
		return FocusLossTransient, true
	case FocusChangeLossTransientCanDuck:
		return FocusLossTransientCanDuck, true
	default:
		return 0, false
	}
}

// AudioSystem is the platform audio focus API.
type AudioSystem interface {
	// RequestFocus asks for focus. onChange may be called from any goroutine
	// until the focus is abandoned.
	RequestFocus(req FocusRequest, onChange func(FocusChange)) (FocusResult, error)
	AbandonFocus(req FocusRequest) error
}

// AudioManager pairs every audio focus request with its abandon.
type AudioManager struct {
	audio AudioSystem
	loop  *Loop
	log   zerolog.Logger
}

func NewAudioManager(ctx context.Context, audio AudioSystem, loop *Loop) *AudioManager {
	return &AudioManager{
		audio: audio,
		loop:  loop,
		log:   *logging.FromContext(logging.WithComponent(ctx, "audio")),
	}
}

// RequestFocusWhen requests audio focus each time event activates and
// abandons it when the activation ends.
//
// The returned observable is active while focus is wanted but not held:
// denied requests and focus taken away by the platform. The returned Scope
// stops watching event, abandoning any focus held.
func (m *AudioManager) RequestFocusWhen(event reactive.Observable[FocusRequest]) (reactive.Observable[FocusLoss], reactive.Scope) {
	loss := reactive.NewController[FocusLoss]()

	stop := event.Subscribe(func(req FocusRequest) reactive.Scope {
		held := true

		onChange := func(change FocusChange) {
			m.loop.Post(func() {
				if !held {
					return
				}

				m.log.Debug().Stringer("change", change).Msg("audio focus changed")
				if l, ok := change.loss(); ok {
					loss.Set(l)
				} else {
					loss.Reset()
				}
			})
		}

		result, err := m.audio.RequestFocus(req, onChange)
		acquired := err == nil && (result == FocusGranted || result == FocusDelayed)
		switch {
		case err != nil:
			m.log.Error().
				Err(&Error{Op: "AudioManager.RequestFocus", Kind: KindAudio, Err: err}).
				Msg("audio focus request failed")
			loss.Set(FocusDenied)
		case result == FocusFailed:
			m.log.Warn().
				Err(&Error{Op: "AudioManager.RequestFocus", Kind: KindAudio, Err: ErrFocusDenied}).
				Stringer("stream", req.Stream).
				Msg("audio focus denied")
			loss.Set(FocusDenied)
		case result == FocusDelayed:
			m.log.Debug().Stringer("stream", req.Stream).Msg("audio focus delayed")
			loss.Set(FocusLossTransient)
		default:
			m.log.Debug().Stringer("stream", req.Stream).Stringer("gain", req.Gain).Msg("audio focus granted")
		}

		return func() {
			held = false
			loss.Reset()

			// nothing to give back for a failed request
			if !acquired {
				return
			}
			if err := m.audio.AbandonFocus(req); err != nil {
				m.log.Error().
					Err(&Error{Op: "AudioManager.AbandonFocus", Kind: KindAudio, Err: err}).
					Msg("audio focus abandon failed")
				return
			}
			m.log.Debug().Stringer("stream", req.Stream).Msg("audio focus abandoned")
		}
	})

	return loss.ReadOnly(), stop
}
