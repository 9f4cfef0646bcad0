package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeDetector_HeldYieldsSinglePress(t *testing.T) {
	d := NewEdgeDetector()
	held := map[Channel]bool{Confirm: true}

	presses := 0
	for i := 0; i < 10; i++ {
		if d.Detect(held).Pressed(Confirm) {
			presses++
			assert.Equal(t, 0, i, "press must be reported on the first held poll")
		}
	}
	assert.Equal(t, 1, presses)
}

func TestEdgeDetector_ReleaseAndPressAgain(t *testing.T) {
	d := NewEdgeDetector()

	assert.True(t, d.Detect(map[Channel]bool{NavDown: true}).Pressed(NavDown))
	assert.False(t, d.Detect(map[Channel]bool{NavDown: true}).Pressed(NavDown))
	assert.False(t, d.Detect(map[Channel]bool{}).Pressed(NavDown))
	assert.True(t, d.Detect(map[Channel]bool{NavDown: true}).Pressed(NavDown))
}

func TestEdgeDetector_ReconnectGivesFreshPress(t *testing.T) {
	d := NewEdgeDetector()
	held := map[Channel]bool{Confirm: true}

	assert.True(t, d.Detect(held).Pressed(Confirm))
	assert.False(t, d.Detect(held).Pressed(Confirm))

	d.Reset()

	assert.True(t, d.Detect(held).Pressed(Confirm))
}

func TestEdgeDetector_ConsistentSnapshot(t *testing.T) {
	d := NewEdgeDetector(Confirm, NavUp, NavDown)

	ev := d.Detect(map[Channel]bool{Confirm: true, NavUp: true, NavDown: true})
	assert.True(t, ev.Pressed(Confirm))
	assert.True(t, ev.Pressed(NavUp))
	assert.True(t, ev.Pressed(NavDown))

	ev = d.Detect(map[Channel]bool{Confirm: true, NavDown: true})
	assert.False(t, ev.Any())

	ev = d.Detect(map[Channel]bool{NavUp: true})
	assert.True(t, ev.Pressed(NavUp))
	assert.False(t, ev.Pressed(Confirm))
}

func TestEdgeDetector_IgnoresUnmonitoredChannels(t *testing.T) {
	d := NewEdgeDetector()

	ev := d.Detect(map[Channel]bool{Menu: true, NavLeft: true})
	assert.False(t, ev.Pressed(Menu))
	assert.False(t, ev.Any())
}

func TestEdgeDetector_CopiesChannelList(t *testing.T) {
	chans := []Channel{Confirm}
	d := NewEdgeDetector(chans...)
	chans[0] = Menu

	assert.True(t, d.Detect(map[Channel]bool{Confirm: true}).Pressed(Confirm))
}
