package cast

import (
	"context"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WebContentsComponent controls cast sessions from the outside: each running
// session is an active controller in a registry keyed by session id, and its
// activation is mirrored to the activity through start and stop intents.
type WebContentsComponent struct {
	ctx      context.Context
	launcher Launcher
	log      zerolog.Logger

	sessions *reactive.Registry[StartParams]
	watches  map[string]reactive.Scope

	// error of the last launch, picked up by Start and Stop
	launchErr error
}

func NewWebContentsComponent(ctx context.Context, launcher Launcher) *WebContentsComponent {
	ctx = logging.WithComponent(ctx, "component")
	return &WebContentsComponent{
		ctx:      ctx,
		launcher: launcher,
		log:      *logging.FromContext(ctx),
		sessions: reactive.NewRegistry[StartParams](),
		watches:  make(map[string]reactive.Scope),
	}
}

// Start starts or updates a session and returns its id.
// A session id is generated when params has none.
func (c *WebContentsComponent) Start(params StartParams) (string, error) {
	if params.SessionID == "" {
		params.SessionID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return "", &Error{Op: "WebContentsComponent.Start", Kind: KindIntent, SessionID: params.SessionID, Err: err}
	}

	id := params.SessionID
	session := c.sessions.Get(id)

	if _, ok := c.watches[id]; !ok {
		c.watches[id] = session.Subscribe(c.mirror(id))
	}

	c.launchErr = nil
	session.Set(params)

	return id, c.takeLaunchErr()
}

// Stop ends the session.
func (c *WebContentsComponent) Stop(sessionID string) error {
	c.launchErr = nil
	if !c.sessions.Remove(sessionID) {
		return &Error{Op: "WebContentsComponent.Stop", Kind: KindIntent, SessionID: sessionID, Err: ErrUnknownSession}
	}

	c.watches[sessionID].Run()
	delete(c.watches, sessionID)

	return c.takeLaunchErr()
}

// Session is active with the params of the session while it runs.
// For an unknown id it returns an observable that never activates.
func (c *WebContentsComponent) Session(sessionID string) reactive.Observable[StartParams] {
	session, ok := c.sessions.Lookup(sessionID)
	if !ok {
		return reactive.NewController[StartParams]().ReadOnly()
	}
	return session.ReadOnly()
}

// Sessions returns the ids of the running sessions.
func (c *WebContentsComponent) Sessions() []string {
	return c.sessions.Keys()
}

// Close stops every running session.
func (c *WebContentsComponent) Close() {
	for _, id := range c.sessions.Keys() {
		if err := c.Stop(id); err != nil {
			logging.FromContext(logging.WithSessionID(c.ctx, id)).Warn().Err(err).Msg("failed to stop session")
		}
	}
}

func (c *WebContentsComponent) mirror(sessionID string) reactive.Observer[StartParams] {
	return func(params StartParams) reactive.Scope {
		c.launch(Intent{Action: ActionStart, Params: params})

		return func() {
			// still registered: the params changed and the start above is sent again
			if _, ok := c.sessions.Lookup(sessionID); ok {
				return
			}
			c.launch(Intent{Action: ActionStop, Params: StartParams{SessionID: sessionID}})
		}
	}
}

func (c *WebContentsComponent) launch(intent Intent) {
	log := logging.FromContext(logging.WithSessionID(c.ctx, intent.Params.SessionID)).With().
		Str("action", string(intent.Action)).Logger()

	if err := c.launcher.Launch(intent); err != nil {
		err = &Error{Op: "WebContentsComponent.launch", Kind: KindLaunch, SessionID: intent.Params.SessionID, Err: err}
		log.Error().Err(err).Msg("launch failed")
		c.launchErr = err
		return
	}

	log.Debug().Msg("intent launched")
}

func (c *WebContentsComponent) takeLaunchErr() error {
	err := c.launchErr
	c.launchErr = nil
	return err
}
