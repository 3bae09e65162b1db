// Package viewctl holds the property view state and the rules that keep it
// in sync with the Property API.
//
// A Controller owns three independently replaced slots (summary, list and
// detail) plus the lookup key. Fetches run in background goroutines; each
// writes only its own slot, and every outcome is reported to an optional
// Notifier so a UI can re-render from Snapshot.
package viewctl

import (
	"context"
	"slices"
	"sync"
	"time"

	"propview/internal/propertyapi"

	"go.uber.org/zap"
)

// Fetcher is the Property API surface the controller needs.
// *propertyapi.Client implements it.
type Fetcher interface {
	Summary(ctx context.Context) (propertyapi.Document, error)
	List(ctx context.Context) ([]propertyapi.Property, error)
	Detail(ctx context.Context, zpid string) (propertyapi.Document, error)
}

var _ Fetcher = (*propertyapi.Client)(nil)

// Snapshot is a point-in-time copy of controller state.
// Documents are shared with the controller and must be treated as read-only.
type Snapshot struct {
	Summary    propertyapi.Document // nil until first successful load
	Properties []propertyapi.Property
	Detail     propertyapi.Document // nil until first successful load
	// DetailKey is the lookup key Detail was fetched for.
	DetailKey string
	LookupKey string
	// InFlight counts fetches that have not settled yet.
	InFlight int
}

// Controller is the property view state machine.
type Controller struct {
	api      Fetcher
	logger   *zap.Logger
	notifier Notifier
	now      func() time.Time

	initOnce sync.Once
	wg       sync.WaitGroup

	mu         sync.Mutex
	summary    propertyapi.Document
	properties []propertyapi.Property
	detail     propertyapi.Document
	detailKey  string
	lookupKey  string
	inFlight   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger fetch failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNotifier sets the event sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// New creates a controller over api. State starts empty: no summary, an
// empty list, no detail and an empty lookup key.
func New(api Fetcher, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		logger:     zap.NewNop(),
		now:        time.Now,
		properties: []propertyapi.Property{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize starts the summary and list fetches concurrently. Only the
// first call has any effect. It does not wait for the results.
func (c *Controller) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		c.LoadSummary(ctx)
		c.LoadList(ctx)
	})
}

// LoadSummary fetches the summary in the background and replaces it on
// success. Failures are logged and leave the previous value.
func (c *Controller) LoadSummary(ctx context.Context) {
	c.spawn(TargetSummary, "", func() Event {
		doc, err := c.api.Summary(ctx)
		if err != nil {
			return c.fetchFailed(TargetSummary, "", err)
		}
		c.mu.Lock()
		c.summary = doc
		c.mu.Unlock()
		return Event{Kind: EventLoaded, Target: TargetSummary}
	})
}

// LoadList fetches the property list in the background and replaces it
// wholesale on success, keeping API order.
func (c *Controller) LoadList(ctx context.Context) {
	c.spawn(TargetList, "", func() Event {
		items, err := c.api.List(ctx)
		if err != nil {
			return c.fetchFailed(TargetList, "", err)
		}
		if items == nil {
			items = []propertyapi.Property{}
		}
		c.mu.Lock()
		c.properties = items
		c.mu.Unlock()
		return Event{Kind: EventLoaded, Target: TargetList}
	})
}

// SetLookupKey updates the lookup key. A change to a different value,
// including to or from "", schedules a detail load for the new value.
func (c *Controller) SetLookupKey(ctx context.Context, key string) {
	c.mu.Lock()
	if key == c.lookupKey {
		c.mu.Unlock()
		return
	}
	c.lookupKey = key
	c.mu.Unlock()

	c.emit(Event{Kind: EventKeyChanged, Target: TargetDetail, Key: key})
	c.loadDetail(ctx, key)
}

// LoadDetail fetches the detail for the current lookup key. With an empty
// key it does nothing; in particular a previously loaded detail stays.
func (c *Controller) LoadDetail(ctx context.Context) {
	c.loadDetail(ctx, c.LookupKey())
}

// RequestDetailManually is the button path to LoadDetail. It always sends
// its own request, even while another one for the same key is in flight.
func (c *Controller) RequestDetailManually(ctx context.Context) {
	c.LoadDetail(ctx)
}

// loadDetail fetches key and applies the response only if key is still the
// lookup key when it arrives. Responses for superseded keys are dropped.
func (c *Controller) loadDetail(ctx context.Context, key string) {
	if key == "" {
		return
	}
	c.spawn(TargetDetail, key, func() Event {
		doc, err := c.api.Detail(ctx, key)
		if err != nil {
			return c.fetchFailed(TargetDetail, key, err)
		}

		c.mu.Lock()
		if c.lookupKey != key {
			current := c.lookupKey
			c.mu.Unlock()
			c.logger.Debug("discarding stale property detail",
				zap.String("zpid", key), zap.String("current_zpid", current))
			return Event{Kind: EventStaleDiscarded, Target: TargetDetail, Key: key}
		}
		c.detail = doc
		c.detailKey = key
		c.mu.Unlock()
		return Event{Kind: EventLoaded, Target: TargetDetail, Key: key}
	})
}

// LookupKey returns the current lookup key.
func (c *Controller) LookupKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookupKey
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Summary:    c.summary,
		Properties: slices.Clone(c.properties),
		Detail:     c.detail,
		DetailKey:  c.detailKey,
		LookupKey:  c.lookupKey,
		InFlight:   c.inFlight,
	}
}

// Wait blocks until every fetch started so far has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// spawn runs fetch in a tracked goroutine. The event fetch returns is
// emitted after the fetch no longer counts as in flight.
func (c *Controller) spawn(target Target, key string, fetch func() Event) {
	c.mu.Lock()
	c.inFlight++
	c.mu.Unlock()
	c.wg.Add(1)

	c.emit(Event{Kind: EventFetchStarted, Target: target, Key: key})
	go func() {
		defer c.wg.Done()
		ev := fetch()
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
		c.emit(ev)
	}()
}

func (c *Controller) fetchFailed(target Target, key string, err error) Event {
	fields := []zap.Field{zap.String("target", string(target)), zap.Error(err)}
	if key != "" {
		fields = append(fields, zap.String("zpid", key))
	}
	c.logger.Error("property api fetch failed", fields...)
	return Event{Kind: EventFetchFailed, Target: target, Key: key, Err: err}
}

func (c *Controller) emit(ev Event) {
	if c.notifier == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = c.now()
	}
	c.notifier.Notify(ev)
}
