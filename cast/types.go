// Package cast wires the lifecycle of a cast media shell with the reactive
// activation algebra: activity lifecycle edges, intents, audio focus and
// surface attachment are Controllers, and every platform side effect is an
// Observer paired with the Scope that undoes it.
//
// All types in this package are confined to the goroutine running their [Loop].
package cast

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// StartParams describes the web contents a session should display.
type StartParams struct {
	SessionID         string `validate:"required"`
	AppID             string
	URL               string `validate:"required,url"`
	TouchInputEnabled bool
}

// Validate reports whether the params can start a session.
func (p StartParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	return nil
}

type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// Intent is a message delivered to an activity.
type Intent struct {
	Action Action
	Params StartParams
}

// Host is the platform container running a [WebContentsActivity].
type Host interface {
	// Finish asks the platform to tear the activity down.
	Finish()

	// StartNewInstance launches a fresh activity for the intent.
	StartNewInstance(intent Intent)
}

// Surface is the rendering surface the web contents draw into.
type Surface interface {
	Attach(params StartParams) error
	Detach(sessionID string)
}

// Media controls the playback of a session's web contents.
type Media interface {
	SetVisible(sessionID string, visible bool)
	SetMuted(sessionID string, muted bool)
}

// Launcher delivers intents to activities, starting one if needed.
type Launcher interface {
	Launch(intent Intent) error
}
