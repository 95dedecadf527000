package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer(t *testing.T) {
	t.Run("queued until the outermost run returns", func(t *testing.T) {
		log := []string{}
		s := NewSequencer()

		s.Sequence(func() {
			log = append(log, "a start")
			assert.True(t, s.IsRunning())

			s.Sequence(func() {
				log = append(log, "b")
				s.Sequence(func() { log = append(log, "d") })
			})
			s.Sequence(func() { log = append(log, "c") })

			log = append(log, "a end")
		})

		assert.False(t, s.IsRunning())
		assert.Equal(t, []string{"a start", "a end", "b", "c", "d"}, log)
	})

	t.Run("run is never queued", func(t *testing.T) {
		log := []string{}
		s := NewSequencer()

		s.Run(func() {
			s.Sequence(func() { log = append(log, "queued") })
			s.Run(func() { log = append(log, "nested") })
			log = append(log, "outer")
		})

		assert.Equal(t, []string{"nested", "outer", "queued"}, log)
	})

	t.Run("panic drops the queue", func(t *testing.T) {
		log := []string{}
		s := NewSequencer()

		assert.Panics(t, func() {
			s.Sequence(func() {
				s.Sequence(func() { log = append(log, "dropped") })
				panic("boom")
			})
		})

		assert.False(t, s.IsRunning())
		s.Sequence(func() { log = append(log, "after") })
		assert.Equal(t, []string{"after"}, log)
	})
}
