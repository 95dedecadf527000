package cast

import (
	"context"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/rs/zerolog"
)

// ContentWindow attaches the rendering surface while the host container
// exists and start params are known, whichever comes first.
type ContentWindow struct {
	surface Surface
	log     zerolog.Logger

	attached *reactive.Controller[StartParams]
	failure  *reactive.Controller[error]

	stop reactive.Scope
}

func NewContentWindow(
	ctx context.Context,
	surface Surface,
	container reactive.Observable[reactive.Unit],
	params reactive.Observable[StartParams],
) *ContentWindow {
	w := &ContentWindow{
		surface:  surface,
		log:      *logging.FromContext(logging.WithComponent(ctx, "window")),
		attached: reactive.NewController[StartParams](),
		failure:  reactive.NewController[error](),
	}

	w.stop = reactive.And(container, params).Subscribe(
		reactive.BothObserver(func(_ reactive.Unit, p StartParams) reactive.Scope {
			return w.attach(p)
		}),
	)

	return w
}

func (w *ContentWindow) attach(p StartParams) reactive.Scope {
	if err := w.surface.Attach(p); err != nil {
		err = &Error{Op: "ContentWindow.attach", Kind: KindSurface, SessionID: p.SessionID, Err: err}
		w.log.Error().Err(err).Msg("surface attach failed")

		w.failure.Set(err)
		return w.failure.Reset
	}

	w.log.Debug().Str("session_id", p.SessionID).Str("url", p.URL).Msg("surface attached")
	w.attached.Set(p)

	return func() {
		w.attached.Reset()
		w.surface.Detach(p.SessionID)
		w.log.Debug().Str("session_id", p.SessionID).Msg("surface detached")
	}
}

// Attached is active, with the params displayed, while the surface is attached.
func (w *ContentWindow) Attached() reactive.Observable[StartParams] {
	return w.attached.ReadOnly()
}

// Failure is active while the latest attach attempt failed.
func (w *ContentWindow) Failure() reactive.Observable[error] {
	return w.failure.ReadOnly()
}

// Close detaches the surface if needed and stops watching the container and params.
func (w *ContentWindow) Close() {
	w.stop.Run()
}
