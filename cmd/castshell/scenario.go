package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AnatoleLucet/reactive/cast"
	"gopkg.in/yaml.v3"
)

// Step events besides the lifecycle events of cast.Shell.
const (
	eventStartSession = "start_session"
	eventStopSession  = "stop_session"
	eventFocus        = "focus"
	eventWait         = "wait"
)

// Scenario is a scripted run of the shell.
type Scenario struct {
	Name string `yaml:"name"`

	// DenyFocus makes the simulated audio system refuse every request.
	DenyFocus bool `yaml:"deny_focus,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Step is one platform event.
type Step struct {
	Event string `yaml:"event"`

	Session string `yaml:"session,omitempty"`
	App     string `yaml:"app,omitempty"`
	URL     string `yaml:"url,omitempty"`

	// Focus is the focus change reported by the audio system, for focus steps.
	Focus string `yaml:"focus,omitempty"`

	// Wait runs the loop for that long, for wait steps.
	Wait time.Duration `yaml:"wait,omitempty"`
}

// LoadScenario reads and checks a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("scenario %s step %d: %w", path, i+1, err)
		}
	}

	return &s, nil
}

func (s Step) validate() error {
	switch s.Event {
	case eventStartSession:
		if s.URL == "" {
			return fmt.Errorf("%s needs an url", s.Event)
		}
	case eventStopSession:
		if s.Session == "" {
			return fmt.Errorf("%s needs a session", s.Event)
		}
	case eventFocus:
		if _, err := cast.ParseFocusChange(s.Focus); err != nil {
			return err
		}
	case eventWait:
		if s.Wait <= 0 {
			return fmt.Errorf("%s needs a positive duration", s.Event)
		}
	case cast.EventCreate, cast.EventStart, cast.EventResume, cast.EventPause,
		cast.EventStop, cast.EventUserLeave, cast.EventDestroy:
	default:
		return fmt.Errorf("unknown event %q", s.Event)
	}

	return nil
}

// Runner replays scenarios against a shell driven by a component.
type Runner struct {
	shell     *cast.Shell
	component *cast.WebContentsComponent
	audio     *logAudio
	loop      *cast.Loop

	// ids of the sessions started by the scenario, by the name it uses
	sessions map[string]string
}

func NewRunner(ctx context.Context, cfg cast.Config, s *Scenario) *Runner {
	loop := cast.NewLoop()
	audio := newLogAudio(ctx, s.DenyFocus)

	shell := cast.NewShell(ctx, cfg, cast.Deps{
		Surface: newLogSurface(ctx),
		Media:   newLogMedia(ctx),
		Audio:   audio,
		Loop:    loop,
	})

	return &Runner{
		shell:     shell,
		component: cast.NewWebContentsComponent(ctx, shell),
		audio:     audio,
		loop:      loop,
		sessions:  make(map[string]string),
	}
}

// Run plays every step, letting the loop settle after each one.
func (r *Runner) Run(ctx context.Context, s *Scenario) error {
	for i, step := range s.Steps {
		if err := r.step(ctx, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Event, err)
		}
		r.loop.Drain()
	}

	return nil
}

func (r *Runner) step(ctx context.Context, step Step) error {
	switch step.Event {
	case eventStartSession:
		id, err := r.component.Start(cast.StartParams{
			SessionID: r.sessions[step.Session],
			AppID:     step.App,
			URL:       step.URL,
		})
		if id != "" && step.Session != "" {
			r.sessions[step.Session] = id
		}
		return err

	case eventStopSession:
		id, ok := r.sessions[step.Session]
		if !ok {
			id = step.Session
		}
		delete(r.sessions, step.Session)
		return r.component.Stop(id)

	case eventFocus:
		change, err := cast.ParseFocusChange(step.Focus)
		if err != nil {
			return err
		}
		r.audio.notify(change)
		return nil

	case eventWait:
		ctx, cancel := context.WithTimeout(ctx, step.Wait)
		defer cancel()

		if err := r.loop.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil

	default:
		return r.shell.Lifecycle(step.Event)
	}
}

// Close stops the remaining sessions and destroys the running activity.
func (r *Runner) Close() {
	r.component.Close()
	r.loop.Drain()
	r.shell.Close()
}
