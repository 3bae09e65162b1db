package viewctl

import "time"

// Target names one of the three state slots.
type Target string

const (
	TargetSummary Target = "summary"
	TargetList    Target = "list"
	TargetDetail  Target = "detail"
)

// EventKind says what happened.
type EventKind string

const (
	// EventKeyChanged fires once per distinct lookup key change.
	EventKeyChanged EventKind = "key_changed"
	// EventFetchStarted fires when a fetch is issued.
	EventFetchStarted EventKind = "fetch_started"
	// EventLoaded fires after a fetch replaced its state slot.
	EventLoaded EventKind = "loaded"
	// EventFetchFailed fires when a fetch failed; state is unchanged.
	EventFetchFailed EventKind = "fetch_failed"
	// EventStaleDiscarded fires when a detail response arrived for a key
	// that is no longer current.
	EventStaleDiscarded EventKind = "stale_discarded"
)

// Event reports a controller state transition or fetch outcome.
// Events also travel through the Bubble Tea program as messages.
type Event struct {
	Kind      EventKind
	Target    Target
	Key       string // lookup key for detail events
	Err       error  // set for EventFetchFailed
	Timestamp time.Time
}

// Notifier receives controller events. Notify may be called from any
// goroutine and must not call back into the controller synchronously.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ev Event) { f(ev) }

// ChanNotifier emits events to a channel.
type ChanNotifier struct {
	Ch chan<- Event
}

// Notify sends the event to the channel (non-blocking; drops if full).
func (n *ChanNotifier) Notify(ev Event) {
	select {
	case n.Ch <- ev:
	default:
		// Channel full; drop to avoid blocking fetch goroutines
	}
}
