package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePad struct {
	present bool
	held    map[Channel]bool
}

func (f *fakePad) Held() (map[Channel]bool, bool) {
	if !f.present {
		return nil, false
	}
	return f.held, true
}

func TestPoller_DisconnectResetsHistory(t *testing.T) {
	pad := &fakePad{present: true, held: map[Channel]bool{Confirm: true}}
	var got []bool
	p := NewPoller(func(ev Events) error {
		got = append(got, ev.Pressed(Confirm))
		return nil
	}, zap.NewNop())
	p.Add("gamepad", pad)

	require.NoError(t, p.Tick())
	require.NoError(t, p.Tick())
	pad.present = false
	require.NoError(t, p.Tick())
	pad.present = true
	require.NoError(t, p.Tick())

	assert.Equal(t, []bool{true, false, false, true}, got)
}

func TestPoller_MergesDevices(t *testing.T) {
	pad := &fakePad{present: true, held: map[Channel]bool{NavDown: true}}
	keys := &fakePad{present: true, held: map[Channel]bool{Confirm: true}}
	calls := 0
	var last Events
	p := NewPoller(func(ev Events) error {
		calls++
		last = ev
		return nil
	}, nil)
	p.Add("gamepad", pad)
	p.Add("keyboard", keys)

	require.NoError(t, p.Tick())
	assert.Equal(t, 1, calls)
	assert.True(t, last.Pressed(NavDown))
	assert.True(t, last.Pressed(Confirm))
}

func TestPoller_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPoller(func(Events) error { return boom }, nil)

	assert.ErrorIs(t, p.Tick(), boom)
}
