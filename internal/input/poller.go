package input

import (
	"go.uber.org/zap"
)

// Device reports the current held state of its channels. ok is false when
// the device is absent (e.g. no gamepad connected).
type Device interface {
	Held() (held map[Channel]bool, ok bool)
}

// Handler consumes the merged events of one poll cycle.
type Handler func(Events) error

type source struct {
	name      string
	dev       Device
	det       *EdgeDetector
	connected bool
}

// Poller polls a set of devices once per Tick, each through its own edge
// detector, and hands the merged events to a single handler call.
type Poller struct {
	sources []*source
	handle  Handler
	logger  *zap.Logger
}

// NewPoller returns a poller delivering events to h.
func NewPoller(h Handler, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{handle: h, logger: logger.Named("input")}
}

// Add registers a device monitored on the given channels
// (NavigationChannels when none are given).
func (p *Poller) Add(name string, dev Device, channels ...Channel) {
	p.sources = append(p.sources, &source{
		name: name,
		dev:  dev,
		det:  NewEdgeDetector(channels...),
	})
}

// Tick runs one poll cycle. Absent devices have their history reset.
func (p *Poller) Tick() error {
	evs := make([]Events, 0, len(p.sources))
	for _, s := range p.sources {
		held, ok := s.dev.Held()
		if !ok {
			if s.connected {
				p.logger.Info("input device disconnected", zap.String("device", s.name))
			}
			s.connected = false
			s.det.Reset()
			continue
		}
		if !s.connected {
			p.logger.Info("input device connected", zap.String("device", s.name))
			s.connected = true
		}
		evs = append(evs, s.det.Detect(held))
	}
	if p.handle == nil {
		return nil
	}
	return p.handle(Merge(evs...))
}
