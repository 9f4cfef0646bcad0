package input

// EdgeDetector derives "pressed this frame" events from successive held
// snapshots of a fixed set of channels.
type EdgeDetector struct {
	channels []Channel
	prev     map[Channel]bool
}

// NewEdgeDetector monitors the given channels, or NavigationChannels when
// none are given.
func NewEdgeDetector(channels ...Channel) *EdgeDetector {
	if len(channels) == 0 {
		channels = NavigationChannels
	}
	return &EdgeDetector{
		channels: append([]Channel(nil), channels...),
		prev:     map[Channel]bool{},
	}
}

// Detect computes edges for every monitored channel against the previous
// snapshot, then replaces that snapshot with held in one step. Channels
// missing from held count as released.
func (d *EdgeDetector) Detect(held map[Channel]bool) Events {
	ev := make(Events, len(d.channels))
	next := make(map[Channel]bool, len(d.channels))
	for _, ch := range d.channels {
		now := held[ch]
		ev[ch] = now && !d.prev[ch]
		next[ch] = now
	}
	d.prev = next
	return ev
}

// Reset forgets all history, so a button still held after a device
// reconnects registers as a fresh press.
func (d *EdgeDetector) Reset() {
	d.prev = map[Channel]bool{}
}
