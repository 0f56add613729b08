package feed

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/facecam-go/domain/geometry"
)

// Subscription identifies one registered orientation listener.
type Subscription uint64

// OrientationListener receives rotation changes for a display.
type OrientationListener func(displayID int, rotation geometry.Rotation)

// Orientation is the display rotation event source consumed by the viewfinder.
type Orientation interface {
	Subscribe(l OrientationListener) Subscription
	Unsubscribe(s Subscription)
	// Rotation returns the last known rotation of the display, or RotationUnknown.
	Rotation(displayID int) geometry.Rotation
}

// Probe reads the current rotation of a display.
type Probe func(displayID int) (geometry.Rotation, error)

// PollingOrientation turns a Probe into an Orientation feed. It polls the
// watched displays on a ticker while at least one listener is subscribed and
// emits only when a rotation changes.
type PollingOrientation struct {
	probe    Probe
	logger   *slog.Logger
	interval time.Duration
	displays []int

	mu        sync.Mutex
	nextID    Subscription
	listeners map[Subscription]OrientationListener
	last      map[int]geometry.Rotation

	running atomic.Bool
	done    chan struct{}
}

// NewPollingOrientation watches displays using probe. A non-positive interval defaults to 250ms.
func NewPollingOrientation(probe Probe, interval time.Duration, logger *slog.Logger, displays ...int) *PollingOrientation {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	if len(displays) == 0 {
		displays = []int{0}
	}
	return &PollingOrientation{
		probe:     probe,
		logger:    logger,
		interval:  interval,
		displays:  displays,
		listeners: make(map[Subscription]OrientationListener),
		last:      make(map[int]geometry.Rotation),
	}
}

// Subscribe registers l and starts polling if it is the first listener.
func (o *PollingOrientation) Subscribe(l OrientationListener) Subscription {
	if o == nil || l == nil {
		return 0
	}
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.listeners[id] = l
	if len(o.listeners) == 1 {
		o.start()
	}
	o.mu.Unlock()
	return id
}

// Unsubscribe removes a listener. Unknown or zero handles are ignored.
func (o *PollingOrientation) Unsubscribe(s Subscription) {
	if o == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.listeners[s]; !ok {
		return
	}
	delete(o.listeners, s)
	if len(o.listeners) == 0 {
		o.stop()
	}
}

// Rotation returns the cached rotation, probing once if nothing is cached yet.
func (o *PollingOrientation) Rotation(displayID int) geometry.Rotation {
	if o == nil {
		return geometry.RotationUnknown
	}
	o.mu.Lock()
	r, ok := o.last[displayID]
	o.mu.Unlock()
	if ok {
		return r
	}
	r = o.read(displayID)
	if r.Valid() {
		o.mu.Lock()
		o.last[displayID] = r
		o.mu.Unlock()
	}
	return r
}

// Listeners reports the number of active subscriptions.
func (o *PollingOrientation) Listeners() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// start and stop are called with mu held.
func (o *PollingOrientation) start() {
	if o.running.Load() {
		return
	}
	o.done = make(chan struct{})
	o.running.Store(true)
	go o.loop(o.done)
}

func (o *PollingOrientation) stop() {
	if !o.running.Load() {
		return
	}
	close(o.done)
	o.running.Store(false)
}

func (o *PollingOrientation) loop(done <-chan struct{}) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			o.poll()
		case <-done:
			return
		}
	}
}

func (o *PollingOrientation) poll() {
	for _, id := range o.displays {
		r := o.read(id)
		if !r.Valid() {
			continue
		}
		o.mu.Lock()
		prev, seen := o.last[id]
		if seen && prev == r {
			o.mu.Unlock()
			continue
		}
		o.last[id] = r
		listeners := make([]OrientationListener, 0, len(o.listeners))
		for _, l := range o.listeners {
			listeners = append(listeners, l)
		}
		o.mu.Unlock()

		if o.logger != nil {
			o.logger.Debug("orientation.changed", "display", id, "rotation", r.String())
		}
		for _, l := range listeners {
			l(id, r)
		}
	}
}

func (o *PollingOrientation) read(displayID int) geometry.Rotation {
	if o.probe == nil {
		return geometry.RotationUnknown
	}
	r, err := o.probe(displayID)
	if err != nil {
		if o.logger != nil {
			o.logger.Error("orientation probe", "display", displayID, "error", err)
		}
		return geometry.RotationUnknown
	}
	return r
}

// FixedProbe always reports rotation for every display.
func FixedProbe(rotation geometry.Rotation) Probe {
	return func(int) (geometry.Rotation, error) { return rotation, nil }
}

var _ Orientation = (*PollingOrientation)(nil)
