package cast

import (
	"context"

	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/rs/zerolog"
)

// Lifecycle event names accepted by [Shell.Lifecycle].
const (
	EventCreate    = "create"
	EventStart     = "start"
	EventResume    = "resume"
	EventPause     = "pause"
	EventStop      = "stop"
	EventUserLeave = "user_leave"
	EventDestroy   = "destroy"
)

// Shell plays the platform for activities: it runs at most one
// [WebContentsActivity] at a time and drives its lifecycle on the loop.
type Shell struct {
	ctx  context.Context
	cfg  Config
	deps Deps
	log  zerolog.Logger

	current  *WebContentsActivity
	launched int
}

// NewShell creates a shell. deps.Host is ignored, each activity gets a host
// backed by the shell.
func NewShell(ctx context.Context, cfg Config, deps Deps) *Shell {
	if deps.Loop == nil {
		deps.Loop = NewLoop()
	}

	return &Shell{
		ctx:  ctx,
		cfg:  cfg,
		deps: deps,
		log:  *logging.FromContext(logging.WithComponent(ctx, "shell")),
	}
}

// Launch delivers the intent to the running activity, or starts a new
// activity with it.
func (s *Shell) Launch(intent Intent) error {
	if s.current != nil {
		s.current.OnNewIntent(intent)
		return nil
	}

	if intent.Action != ActionStart {
		return &Error{Op: "Shell.Launch", Kind: KindLaunch, SessionID: intent.Params.SessionID, Err: ErrNoActivity}
	}

	a, err := s.create()
	if err != nil {
		return err
	}

	a.OnNewIntent(intent)
	a.OnStart()
	a.OnResume()

	return nil
}

// Lifecycle applies a named lifecycle event to the running activity.
// EventCreate starts an activity without intent if none is running.
func (s *Shell) Lifecycle(event string) error {
	if event == EventCreate {
		if s.current == nil {
			_, err := s.create()
			return err
		}
		return nil
	}

	a := s.current
	if a == nil {
		return &Error{Op: "Shell.Lifecycle", Kind: KindLaunch, Err: ErrNoActivity}
	}

	switch event {
	case EventStart:
		a.OnStart()
	case EventResume:
		a.OnResume()
	case EventPause:
		a.OnPause()
	case EventStop:
		a.OnStop()
	case EventUserLeave:
		a.OnUserLeaveHint()
	case EventDestroy:
		s.destroy(a)
	default:
		return &Error{Op: "Shell.Lifecycle", Kind: KindUnknown, Err: ErrUnknownLifecycle}
	}

	return nil
}

// Current returns the running activity, nil if none.
func (s *Shell) Current() *WebContentsActivity { return s.current }

// Launched returns how many activities the shell created.
func (s *Shell) Launched() int { return s.launched }

func (s *Shell) Loop() *Loop { return s.deps.Loop }

// Close destroys the running activity.
func (s *Shell) Close() {
	if s.current != nil {
		s.destroy(s.current)
	}
}

func (s *Shell) create() (*WebContentsActivity, error) {
	host := &shellHost{shell: s}

	deps := s.deps
	deps.Host = host

	a, err := NewWebContentsActivity(s.ctx, s.cfg, deps)
	if err != nil {
		return nil, err
	}
	host.activity = a

	s.current = a
	s.launched++
	s.log.Debug().Int("instance", s.launched).Msg("activity created")

	a.OnCreate()
	return a, nil
}

func (s *Shell) destroy(a *WebContentsActivity) {
	if a.IsDestroyed() {
		return
	}

	a.OnPause()
	a.OnStop()
	a.OnDestroy()

	if s.current == a {
		s.current = nil
	}
	s.log.Debug().Msg("activity destroyed")
}

// shellHost is the Host of one activity. Requests are posted so they run
// after the activity callback that issued them returns.
type shellHost struct {
	shell    *Shell
	activity *WebContentsActivity
}

func (h *shellHost) Finish() {
	h.shell.deps.Loop.Post(func() {
		h.shell.destroy(h.activity)
	})
}

func (h *shellHost) StartNewInstance(intent Intent) {
	h.shell.deps.Loop.Post(func() {
		if err := h.shell.Launch(intent); err != nil {
			h.shell.log.Error().Err(err).Msg("failed to start new instance")
		}
	})
}
