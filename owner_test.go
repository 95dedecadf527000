package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwner(t *testing.T) {
	t.Run("dispose ends subscriptions", func(t *testing.T) {
		log := []string{}

		c := NewController[int]()
		o := NewOwner()

		Watch(o, c, logger[int](&log, "x"))
		Watch(o, c, logger[int](&log, "y"))

		c.Set(1)
		log = append(log, "set")
		o.Dispose()
		log = append(log, "disposed")
		c.Set(2)

		assert.True(t, o.IsDisposed())
		assert.Equal(t, []string{
			"x open 1",
			"y open 1",
			"set",
			"y close 1",
			"x close 1",
			"disposed",
		}, log)
	})

	t.Run("nested owners", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.Track(func() { log = append(log, "parent disposed") })

		child := o.Child()
		child.Track(func() { log = append(log, "child disposed") })

		o.Dispose()
		o.Dispose()

		assert.True(t, child.IsDisposed())
		assert.Equal(t, []string{
			"child disposed",
			"parent disposed",
		}, log)
	})

	t.Run("child disposed on its own", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.Track(func() { log = append(log, "parent disposed") })

		first := o.Child()
		first.Track(func() { log = append(log, "first disposed") })
		second := o.Child()
		second.Track(func() { log = append(log, "second disposed") })

		first.Dispose()
		o.Dispose()

		assert.Equal(t, []string{
			"first disposed",
			"second disposed",
			"parent disposed",
		}, log)
	})

	t.Run("track after dispose", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.Dispose()
		o.Track(func() { log = append(log, "cleanup") })
		o.Track(nil)

		assert.Equal(t, []string{"cleanup"}, log)
	})

	t.Run("catches panics with OnError", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.OnError(func(err any) {
			log = append(log, fmt.Sprintf("caught %v", err))
		})

		c := NewController[int]()
		Watch(o, c, Guard(o, func(v int) Scope {
			if v < 0 {
				panic("negative")
			}
			return func() { panic(fmt.Sprintf("closing %d", v)) }
		}))
		Watch(o, c, logger[int](&log, "next"))

		c.Set(-1)
		c.Set(1)
		c.Reset()

		assert.Equal(t, []string{
			"caught negative",
			"next open -1",
			"next close -1",
			"next open 1",
			"caught closing 1",
			"next close 1",
		}, log)
	})

	t.Run("child falls back to the parent listener", func(t *testing.T) {
		log := []string{}

		o := NewOwner()
		o.OnError(func(err any) {
			log = append(log, fmt.Sprintf("caught %v", err))
		})
		child := o.Child()

		c := NewController[int]()
		Watch(child, c, Guard(child, func(int) Scope { panic("oops") }))

		c.Set(1)

		assert.Equal(t, []string{"caught oops"}, log)
	})

	t.Run("propagates without listener", func(t *testing.T) {
		o := NewOwner()

		c := NewController[int]()
		Watch(o, c, Guard(o, func(int) Scope { panic("oops") }))

		assert.PanicsWithValue(t, "oops", func() { c.Set(1) })
	})
}
