package cast

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AnatoleLucet/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioManager(t *testing.T) {
	music := FocusRequest{Stream: StreamMusic, Gain: GainFull}

	setup := func(result FocusResult, err error) (*transcript, *fakeAudio, *Loop, *reactive.Controller[FocusRequest], reactive.Observable[FocusLoss], reactive.Scope) {
		tr := &transcript{}
		audio := &fakeAudio{tr: tr, result: result, err: err}
		loop := NewLoop()

		m := NewAudioManager(context.Background(), audio, loop)
		event := reactive.NewController[FocusRequest]()
		loss, stop := m.RequestFocusWhen(event)
		loss.Subscribe(observe[FocusLoss](tr, "loss"))

		return tr, audio, loop, event, loss, stop
	}

	t.Run("request and abandon follow the event", func(t *testing.T) {
		tr, _, _, event, loss, _ := setup(FocusGranted, nil)

		event.Set(music)
		assert.False(t, loss.IsActive())

		event.Reset()
		event.Set(music)

		assert.Equal(t, []string{
			"audio request music full",
			"audio abandon music",
			"audio request music full",
		}, tr.take())
	})

	t.Run("denied", func(t *testing.T) {
		tr, _, _, event, loss, _ := setup(FocusFailed, nil)

		event.Set(music)
		assert.True(t, loss.IsActive())

		event.Reset()
		assert.False(t, loss.IsActive())

		assert.Equal(t, []string{
			"audio request music full",
			"loss open denied",
			"loss close denied",
		}, tr.take())
	})

	t.Run("request error is a denial", func(t *testing.T) {
		tr, _, _, event, _, stop := setup(FocusGranted, errors.New("no audio device"))

		event.Set(music)
		assert.Equal(t, []string{
			"audio request music full",
			"loss open denied",
		}, tr.take())

		stop()
		assert.Equal(t, []string{
			"loss close denied",
		}, tr.take())
	})

	t.Run("delayed until granted", func(t *testing.T) {
		tr, audio, loop, event, loss, _ := setup(FocusDelayed, nil)

		event.Set(music)
		assert.True(t, loss.IsActive())

		audio.onChange(FocusChangeGain)
		assert.True(t, loss.IsActive(), "changes apply on the loop")

		loop.Drain()
		assert.False(t, loss.IsActive())

		assert.Equal(t, []string{
			"audio request music full",
			"loss open transient",
			"loss close transient",
		}, tr.take())
	})

	t.Run("focus changes from another goroutine", func(t *testing.T) {
		tr, audio, loop, event, _, _ := setup(FocusGranted, nil)

		event.Set(music)

		var wg sync.WaitGroup
		wg.Go(func() { audio.onChange(FocusChangeLossTransientCanDuck) })
		wg.Wait()
		loop.Drain()

		wg.Go(func() { audio.onChange(FocusChangeLoss) })
		wg.Wait()
		loop.Drain()

		assert.Equal(t, []string{
			"audio request music full",
			"loss open transient_can_duck",
			"loss close transient_can_duck",
			"loss open permanent",
		}, tr.take())
	})

	t.Run("changes after abandon are ignored", func(t *testing.T) {
		tr, audio, loop, event, loss, _ := setup(FocusGranted, nil)

		event.Set(music)
		onChange := audio.onChange
		event.Reset()

		onChange(FocusChangeLoss)
		loop.Drain()
		assert.False(t, loss.IsActive())

		assert.Equal(t, []string{
			"audio request music full",
			"audio abandon music",
		}, tr.take())
	})

	t.Run("stop abandons held focus", func(t *testing.T) {
		tr, _, _, event, _, stop := setup(FocusGranted, nil)

		event.Set(music)
		stop.Run()
		event.Reset()

		assert.Equal(t, []string{
			"audio request music full",
			"audio abandon music",
		}, tr.take())
	})
}

func TestParseAudioEnums(t *testing.T) {
	stream, err := ParseStreamType("Voice_Call")
	require.NoError(t, err)
	assert.Equal(t, StreamVoiceCall, stream)

	gain, err := ParseFocusGain("transient_may_duck")
	require.NoError(t, err)
	assert.Equal(t, GainTransientMayDuck, gain)

	change, err := ParseFocusChange("loss_transient")
	require.NoError(t, err)
	assert.Equal(t, FocusChangeLossTransient, change)

	_, err = ParseStreamType("radio")
	assert.Error(t, err)
	_, err = ParseFocusGain("")
	assert.Error(t, err)
	_, err = ParseFocusChange("louder")
	assert.Error(t, err)

	assert.Equal(t, "stream(42)", StreamType(42).String())
}
