package cast

import (
	"context"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/rs/zerolog"
)

type unit = reactive.Unit

// Deps are the platform collaborators of a [WebContentsActivity].
type Deps struct {
	Host    Host
	Surface Surface
	Media   Media
	// Audio may be nil, the activity then never requests audio focus.
	Audio AudioSystem
	// Loop receives the audio focus changes, required with Audio.
	Loop *Loop
}

// WebContentsActivity hosts the web contents of one cast session.
//
// Each platform callback only sets or resets a controller, the effects
// (surface attachment, visibility, audio focus, finishing, relaunching) are
// derived from those controllers and undone by their scopes.
type WebContentsActivity struct {
	ctx  context.Context
	cfg  Config
	deps Deps
	log  zerolog.Logger

	owner *reactive.Owner

	created   *reactive.Controller[unit]
	started   *reactive.Controller[unit]
	resumed   *reactive.Controller[unit]
	userLeft  *reactive.Controller[unit]
	finishing *reactive.Controller[unit]
	destroyed bool

	gotIntent    *reactive.Controller[Intent]
	startParams  *reactive.Controller[StartParams]
	audioManager *reactive.Controller[*AudioManager]
	focusLoss    *reactive.Controller[FocusLoss]

	window *ContentWindow
}

func NewWebContentsActivity(ctx context.Context, cfg Config, deps Deps) (*WebContentsActivity, error) {
	focus, err := cfg.FocusRequest()
	if err != nil {
		return nil, err
	}

	ctx = logging.WithComponent(ctx, "activity")

	a := &WebContentsActivity{
		ctx:  ctx,
		cfg:  cfg,
		deps: deps,
		log:  *logging.FromContext(ctx),

		owner: reactive.NewOwner(),

		created:   reactive.NewController[unit](),
		started:   reactive.NewController[unit](),
		resumed:   reactive.NewController[unit](),
		userLeft:  reactive.NewController[unit](),
		finishing: reactive.NewController[unit](),

		// every delivery is a new intent, even an identical one
		gotIntent:    reactive.NewController[Intent](reactive.WithEqual(func(Intent, Intent) bool { return false })),
		startParams:  reactive.NewController[StartParams](),
		audioManager: reactive.NewController[*AudioManager](),
		focusLoss:    reactive.NewController[FocusLoss](),
	}

	a.wire(focus)

	return a, nil
}

func (a *WebContentsActivity) wire(focus FocusRequest) {
	notFinishing := reactive.Not(a.finishing)

	// intents received before finishing are handled by this instance
	reactive.Watch(a.owner, reactive.And(a.gotIntent, notFinishing),
		reactive.BothObserver(func(intent Intent, _ unit) reactive.Scope {
			a.handleIntent(intent)
			return nil
		}),
	)

	// intents received after finishing started go to a new instance
	relaunch, stopRelaunch := reactive.AndThen(a.finishing, a.gotIntent)
	a.owner.Track(stopRelaunch)
	reactive.Watch(a.owner, relaunch,
		reactive.BothObserver(func(_ unit, intent Intent) reactive.Scope {
			if intent.Action != ActionStart {
				return nil
			}

			logging.FromContext(logging.WithSessionID(a.ctx, intent.Params.SessionID)).Info().
				Msg("intent received while finishing, starting a new instance")
			a.deps.Host.StartNewInstance(intent)
			return nil
		}),
	)

	reactive.Watch(a.owner, a.finishing, reactive.OnEnter(func(unit) {
		a.log.Info().Msg("finishing")
		a.deps.Host.Finish()
	}))

	a.window = NewContentWindow(a.ctx, a.deps.Surface, a.created, a.startParams)
	a.owner.Track(a.window.Close)

	reactive.Watch(a.owner, reactive.And(a.started, a.startParams),
		reactive.BothObserver(func(_ unit, p StartParams) reactive.Scope {
			a.deps.Media.SetVisible(p.SessionID, true)
			return func() { a.deps.Media.SetVisible(p.SessionID, false) }
		}),
	)

	if a.cfg.FinishOnUserLeave {
		reactive.Watch(a.owner, reactive.And(a.userLeft, notFinishing), reactive.OnEnter(func(reactive.Both[unit, unit]) {
			a.log.Info().Msg("user left, finishing")
			a.Finish()
		}))
	}

	if a.cfg.Audio.RequestFocus {
		wantsFocus := reactive.Map(
			reactive.And(reactive.And(a.created, a.resumed), notFinishing),
			func(reactive.Both[reactive.Both[unit, unit], unit]) FocusRequest { return focus },
		)

		reactive.Watch(a.owner, a.audioManager, func(m *AudioManager) reactive.Scope {
			loss, release := m.RequestFocusWhen(wantsFocus)
			unsubscribe := loss.Subscribe(a.onFocusLoss)

			return unsubscribe.Then(release)
		})
	}
}

func (a *WebContentsActivity) handleIntent(intent Intent) {
	log := logging.FromContext(logging.WithSessionID(a.ctx, intent.Params.SessionID)).With().
		Str("action", string(intent.Action)).Logger()

	switch intent.Action {
	case ActionStart:
		if err := intent.Params.Validate(); err != nil {
			log.Warn().Err(&Error{Op: "WebContentsActivity.handleIntent", Kind: KindIntent, Err: err}).Msg("ignoring intent")
			return
		}

		log.Debug().Str("url", intent.Params.URL).Msg("starting session")
		a.startParams.Set(intent.Params)

	case ActionStop:
		current, ok := a.startParams.Get()
		if ok && intent.Params.SessionID != "" && intent.Params.SessionID != current.SessionID {
			log.Warn().Err(&Error{Op: "WebContentsActivity.handleIntent", Kind: KindIntent, Err: ErrUnknownSession}).Msg("ignoring intent")
			return
		}

		log.Debug().Msg("stopping session")
		a.Finish()

	default:
		log.Warn().Msg("ignoring intent with unknown action")
	}
}

func (a *WebContentsActivity) onFocusLoss(loss FocusLoss) reactive.Scope {
	a.log.Info().Stringer("loss", loss).Msg("audio focus lost")

	a.focusLoss.Set(loss)
	scope := reactive.Scope(a.focusLoss.Reset)

	params, ok := a.startParams.Get()
	if !ok || !a.cfg.MuteOnFocusLoss || loss == FocusLossTransientCanDuck {
		return scope
	}

	a.deps.Media.SetMuted(params.SessionID, true)
	return scope.Then(func() { a.deps.Media.SetMuted(params.SessionID, false) })
}

func (a *WebContentsActivity) OnCreate() {
	a.created.Set(unit{})

	if a.deps.Audio != nil {
		a.audioManager.Set(NewAudioManager(a.ctx, a.deps.Audio, a.deps.Loop))
	}
}

func (a *WebContentsActivity) OnStart() { a.started.Set(unit{}) }

func (a *WebContentsActivity) OnResume() {
	a.userLeft.Reset()
	a.resumed.Set(unit{})
}

func (a *WebContentsActivity) OnPause() { a.resumed.Reset() }

func (a *WebContentsActivity) OnStop() { a.started.Reset() }

func (a *WebContentsActivity) OnUserLeaveHint() { a.userLeft.Set(unit{}) }

func (a *WebContentsActivity) OnNewIntent(intent Intent) { a.gotIntent.Set(intent) }

// Finish starts finishing the activity. The host is asked to finish once.
func (a *WebContentsActivity) Finish() { a.finishing.Set(unit{}) }

// OnDestroy winds every effect down and drops all subscriptions.
func (a *WebContentsActivity) OnDestroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true

	a.resumed.Reset()
	a.started.Reset()
	a.audioManager.Reset()
	a.created.Reset()
	a.startParams.Reset()

	a.owner.Dispose()
	a.log.Debug().Msg("destroyed")
}

func (a *WebContentsActivity) IsFinishing() bool { return a.finishing.IsActive() }

func (a *WebContentsActivity) IsDestroyed() bool { return a.destroyed }

// StartParams is active with the params of the session being displayed.
func (a *WebContentsActivity) StartParams() reactive.Observable[StartParams] {
	return a.startParams.ReadOnly()
}

// FocusLoss is active while audio focus is wanted but not held.
func (a *WebContentsActivity) FocusLoss() reactive.Observable[FocusLoss] {
	return a.focusLoss.ReadOnly()
}

func (a *WebContentsActivity) Window() *ContentWindow { return a.window }
