package cast

import (
	"context"
	"fmt"
	"testing"

	"github.com/AnatoleLucet/reactive"
	"github.com/stretchr/testify/require"
)

// transcript records what the fakes were asked to do, in order.
type transcript struct {
	log []string
}

func (tr *transcript) add(format string, args ...any) {
	tr.log = append(tr.log, fmt.Sprintf(format, args...))
}

// take returns the entries recorded since the last call.
func (tr *transcript) take() []string {
	log := tr.log
	tr.log = nil
	return log
}

func observe[T any](tr *transcript, name string) reactive.Observer[T] {
	return func(v T) reactive.Scope {
		tr.add("%s open %v", name, v)
		return func() { tr.add("%s close %v", name, v) }
	}
}

type fakeHost struct{ tr *transcript }

func (h *fakeHost) Finish() { h.tr.add("host finish") }

func (h *fakeHost) StartNewInstance(intent Intent) {
	h.tr.add("host new instance %s %s", intent.Action, intent.Params.SessionID)
}

type fakeSurface struct {
	tr   *transcript
	fail error
}

func (s *fakeSurface) Attach(p StartParams) error {
	if s.fail != nil {
		s.tr.add("surface attach failed %s", p.SessionID)
		return s.fail
	}
	s.tr.add("surface attach %s %s", p.SessionID, p.URL)
	return nil
}

func (s *fakeSurface) Detach(sessionID string) { s.tr.add("surface detach %s", sessionID) }

type fakeMedia struct{ tr *transcript }

func (m *fakeMedia) SetVisible(sessionID string, visible bool) {
	m.tr.add("media visible %s %t", sessionID, visible)
}

func (m *fakeMedia) SetMuted(sessionID string, muted bool) {
	m.tr.add("media muted %s %t", sessionID, muted)
}

type fakeAudio struct {
	tr *transcript

	result FocusResult
	err    error

	// callback of the last request
	onChange func(FocusChange)
}

func (a *fakeAudio) RequestFocus(req FocusRequest, onChange func(FocusChange)) (FocusResult, error) {
	a.tr.add("audio request %s %s", req.Stream, req.Gain)
	a.onChange = onChange
	return a.result, a.err
}

func (a *fakeAudio) AbandonFocus(req FocusRequest) error {
	a.tr.add("audio abandon %s", req.Stream)
	return nil
}

type fakeLauncher struct {
	tr  *transcript
	err error
}

func (l *fakeLauncher) Launch(intent Intent) error {
	l.tr.add("launch %s %s", intent.Action, intent.Params.SessionID)
	return l.err
}

// rig is an activity wired to fakes sharing one transcript.
type rig struct {
	tr      *transcript
	host    *fakeHost
	surface *fakeSurface
	media   *fakeMedia
	audio   *fakeAudio
	loop    *Loop

	activity *WebContentsActivity
}

func newRig(t *testing.T, cfg Config) *rig {
	t.Helper()

	tr := &transcript{}
	r := &rig{
		tr:      tr,
		host:    &fakeHost{tr},
		surface: &fakeSurface{tr: tr},
		media:   &fakeMedia{tr},
		audio:   &fakeAudio{tr: tr},
		loop:    NewLoop(),
	}

	a, err := NewWebContentsActivity(context.Background(), cfg, r.deps())
	require.NoError(t, err)
	r.activity = a

	return r
}

func (r *rig) deps() Deps {
	return Deps{
		Host:    r.host,
		Surface: r.surface,
		Media:   r.media,
		Audio:   r.audio,
		Loop:    r.loop,
	}
}

func startIntent(sessionID, url string) Intent {
	return Intent{
		Action: ActionStart,
		Params: StartParams{SessionID: sessionID, AppID: "app", URL: url},
	}
}

func stopIntent(sessionID string) Intent {
	return Intent{Action: ActionStop, Params: StartParams{SessionID: sessionID}}
}
