package viewctl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"propview/internal/apimock"
	"propview/internal/propertyapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeAPI is an in-memory Fetcher. Detail calls for a key with a gate block
// until the gate is closed.
type fakeAPI struct {
	mu sync.Mutex

	summary    propertyapi.Document
	summaryErr error
	list       []propertyapi.Property
	listErr    error
	details    map[string]propertyapi.Document
	gates      map[string]chan struct{}

	summaryCalls int
	listCalls    int
	detailCalls  []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		summary: propertyapi.Document(`{"total":42}`),
		list: []propertyapi.Property{
			{ZPID: "1", StreetAddress: "1 Main St"},
			{ZPID: "2", StreetAddress: "2 Main St"},
		},
		details: map[string]propertyapi.Document{
			"1": propertyapi.Document(`{"zpid":1,"street_address":"1 Main St"}`),
			"2": propertyapi.Document(`{"zpid":2,"street_address":"2 Main St"}`),
			"3": propertyapi.Document(`{"zpid":3,"street_address":"3 Main St"}`),
		},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeAPI) Summary(ctx context.Context) (propertyapi.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	return f.summary, f.summaryErr
}

func (f *fakeAPI) List(ctx context.Context) ([]propertyapi.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.list, f.listErr
}

func (f *fakeAPI) Detail(ctx context.Context, zpid string) (propertyapi.Document, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, zpid)
	gate := f.gates[zpid]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.details[zpid]
	if !ok {
		return nil, &propertyapi.FetchError{Op: "detail", StatusCode: 404, Err: errors.New("Property not found")}
	}
	return doc, nil
}

func (f *fakeAPI) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeAPI) calls() (summary, list int, detail []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summaryCalls, f.listCalls, append([]string(nil), f.detailCalls...)
}

// recorder collects events in order.
type recorder struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan Event, 128)}
}

func (r *recorder) Notify(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.ch <- ev
}

func (r *recorder) count(kind EventKind, target Target) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind && ev.Target == target {
			n++
		}
	}
	return n
}

// waitFor blocks until an event matching kind, target and key arrives.
func (r *recorder) waitFor(t *testing.T, kind EventKind, target Target, key string) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-r.ch:
			if ev.Kind == kind && ev.Target == target && ev.Key == key {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s/%s key=%q", kind, target, key)
		}
	}
}

func TestController_InitialState(t *testing.T) {
	c := New(newFakeAPI())
	s := c.Snapshot()
	assert.Nil(t, s.Summary)
	assert.NotNil(t, s.Properties)
	assert.Empty(t, s.Properties)
	assert.Nil(t, s.Detail)
	assert.Equal(t, "", s.LookupKey)
	assert.Equal(t, 0, s.InFlight)
}

func TestController_InitializeLoadsSummaryAndListOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	c := New(api)

	c.Initialize(context.Background())
	c.Initialize(context.Background())
	c.Wait()

	summaryCalls, listCalls, detailCalls := api.calls()
	assert.Equal(t, 1, summaryCalls)
	assert.Equal(t, 1, listCalls)
	assert.Empty(t, detailCalls)

	s := c.Snapshot()
	assert.Equal(t, api.summary, s.Summary)
	assert.Equal(t, api.list, s.Properties)
	assert.Equal(t, 0, s.InFlight)
}

func TestController_SetLookupKeyFetchesPerDistinctChange(t *testing.T) {
	api := newFakeAPI()
	rec := newRecorder()
	c := New(api, WithNotifier(rec))
	ctx := context.Background()

	for _, key := range []string{"1", "1", "2", "", "", "3", "2"} {
		c.SetLookupKey(ctx, key)
		c.Wait()
	}

	// "" -> 1 -> 2 -> "" -> 3 -> 2
	assert.Equal(t, 5, rec.count(EventKeyChanged, TargetDetail))
	_, _, detailCalls := api.calls()
	assert.Equal(t, []string{"1", "2", "3", "2"}, detailCalls)
	assert.Equal(t, 4, rec.count(EventFetchStarted, TargetDetail))
	assert.Equal(t, "2", c.Snapshot().DetailKey)
}

func TestController_EmptyKeyNeverFetches(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	ctx := context.Background()

	c.LoadDetail(ctx)
	c.RequestDetailManually(ctx)
	c.SetLookupKey(ctx, "")
	c.Wait()

	_, _, detailCalls := api.calls()
	assert.Empty(t, detailCalls)
	assert.Nil(t, c.Snapshot().Detail)
}

func TestController_ManualRequestMatchesReactiveTrigger(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	ctx := context.Background()

	c.SetLookupKey(ctx, "3")
	c.Wait()
	reactive := c.Snapshot().Detail

	c.RequestDetailManually(ctx)
	c.Wait()

	_, _, detailCalls := api.calls()
	assert.Equal(t, []string{"3", "3"}, detailCalls)
	assert.Equal(t, reactive, c.Snapshot().Detail)
	assert.Equal(t, api.details["3"], c.Snapshot().Detail)
}

func TestController_OverlappingTriggersEachSendRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	gate := api.gate("3")
	rec := newRecorder()
	c := New(api, WithNotifier(rec))
	ctx := context.Background()

	// Key change and button press while the first request is still pending.
	c.SetLookupKey(ctx, "3")
	c.RequestDetailManually(ctx)
	require.Eventually(t, func() bool {
		_, _, detailCalls := api.calls()
		return len(detailCalls) == 2
	}, 2*time.Second, 5*time.Millisecond)

	close(gate)
	c.Wait()

	_, _, detailCalls := api.calls()
	assert.Equal(t, []string{"3", "3"}, detailCalls)
	assert.Equal(t, 2, rec.count(EventLoaded, TargetDetail))
	assert.Equal(t, api.details["3"], c.Snapshot().Detail)
}

func TestController_KeyReturningWhileInFlightFetchesAgain(t *testing.T) {
	api := newFakeAPI()
	gate := api.gate("1")
	c := New(api)
	ctx := context.Background()

	c.SetLookupKey(ctx, "1")
	c.SetLookupKey(ctx, "")
	c.SetLookupKey(ctx, "1")
	require.Eventually(t, func() bool {
		_, _, detailCalls := api.calls()
		return len(detailCalls) == 2
	}, 2*time.Second, 5*time.Millisecond)

	close(gate)
	c.Wait()

	_, _, detailCalls := api.calls()
	assert.Equal(t, []string{"1", "1"}, detailCalls)
	assert.Equal(t, api.details["1"], c.Snapshot().Detail)
}

func TestController_OverlappingTriggersOverHTTP(t *testing.T) {
	var requests atomic.Int32
	router := apimock.NewRouter(apimock.DefaultFixtures(), nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/property" {
			requests.Add(1)
			time.Sleep(50 * time.Millisecond)
		}
		router.ServeHTTP(w, r)
	}))
	defer srv.Close()

	c := New(propertyapi.NewClient(srv.URL))
	ctx := context.Background()

	c.SetLookupKey(ctx, "29141010")
	c.RequestDetailManually(ctx)
	c.Wait()
	assert.EqualValues(t, 2, requests.Load())

	c.SetLookupKey(ctx, "29141725")
	c.SetLookupKey(ctx, "")
	c.SetLookupKey(ctx, "29141725")
	c.Wait()
	assert.EqualValues(t, 4, requests.Load())
	assert.Equal(t, "29141725", c.Snapshot().DetailKey)
}

func TestController_DetailFailureKeepsPreviousDetail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	api := newFakeAPI()
	c := New(api, WithLogger(zap.New(core)))
	ctx := context.Background()

	// Nothing fetched yet: failure leaves detail absent.
	c.SetLookupKey(ctx, "123")
	c.Wait()
	assert.Nil(t, c.Snapshot().Detail)

	c.SetLookupKey(ctx, "1")
	c.Wait()
	require.Equal(t, api.details["1"], c.Snapshot().Detail)

	c.SetLookupKey(ctx, "123")
	c.Wait()
	s := c.Snapshot()
	assert.Equal(t, api.details["1"], s.Detail)
	assert.Equal(t, "1", s.DetailKey)
	assert.Equal(t, "123", s.LookupKey)

	failures := logs.FilterMessage("property api fetch failed").All()
	require.Len(t, failures, 2)
	assert.Equal(t, "123", failures[0].ContextMap()["zpid"])
	assert.Equal(t, "detail", failures[0].ContextMap()["target"])
}

func TestController_ClearingKeyKeepsDetail(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	ctx := context.Background()

	c.SetLookupKey(ctx, "2")
	c.Wait()
	c.SetLookupKey(ctx, "")
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, "", s.LookupKey)
	assert.Equal(t, api.details["2"], s.Detail)
	_, _, detailCalls := api.calls()
	assert.Equal(t, []string{"2"}, detailCalls)
}

func TestController_StaleDetailResponseIsDiscarded(t *testing.T) {
	defer goleak.VerifyNone(t)

	api := newFakeAPI()
	gate1 := api.gate("1")
	gate2 := api.gate("2")
	rec := newRecorder()
	c := New(api, WithNotifier(rec))
	ctx := context.Background()

	c.SetLookupKey(ctx, "1")
	c.SetLookupKey(ctx, "2")

	// "2" resolves first.
	close(gate2)
	rec.waitFor(t, EventLoaded, TargetDetail, "2")
	require.Equal(t, api.details["2"], c.Snapshot().Detail)

	// Then the superseded "1" response arrives.
	close(gate1)
	c.Wait()

	s := c.Snapshot()
	assert.Equal(t, api.details["2"], s.Detail)
	assert.Equal(t, "2", s.DetailKey)
	assert.Equal(t, 1, rec.count(EventStaleDiscarded, TargetDetail))
	assert.Equal(t, 0, s.InFlight)
}

func TestController_StaleResponseDiscardedEvenWhenFirstToArrive(t *testing.T) {
	api := newFakeAPI()
	gate2 := api.gate("2")
	rec := newRecorder()
	c := New(api, WithNotifier(rec))
	ctx := context.Background()

	api.mu.Lock() // hold "1" inside Detail until the key has moved on
	c.SetLookupKey(ctx, "1")
	c.SetLookupKey(ctx, "2")
	api.mu.Unlock()

	rec.waitFor(t, EventStaleDiscarded, TargetDetail, "1")
	assert.Nil(t, c.Snapshot().Detail)

	close(gate2)
	c.Wait()
	assert.Equal(t, api.details["2"], c.Snapshot().Detail)
}

func TestController_FailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	api := newFakeAPI()
	api.summaryErr = &propertyapi.FetchError{Op: "summary", StatusCode: 500, Err: errors.New("boom")}
	rec := newRecorder()
	c := New(api, WithLogger(zap.New(core)), WithNotifier(rec))

	c.Initialize(context.Background())
	c.Wait()

	s := c.Snapshot()
	assert.Nil(t, s.Summary, "failed summary must stay absent")
	assert.Equal(t, api.list, s.Properties, "list must load despite summary failure")
	assert.Equal(t, 1, rec.count(EventFetchFailed, TargetSummary))
	assert.Equal(t, 1, rec.count(EventLoaded, TargetList))

	entries := logs.FilterMessage("property api fetch failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "summary", entries[0].ContextMap()["target"])
}

func TestController_ListFailureKeepsPreviousList(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	ctx := context.Background()

	c.LoadList(ctx)
	c.Wait()
	require.Len(t, c.Snapshot().Properties, 2)

	api.mu.Lock()
	api.listErr = errors.New("connection reset")
	api.list = nil
	api.mu.Unlock()

	c.LoadList(ctx)
	c.Wait()
	assert.Len(t, c.Snapshot().Properties, 2)
}

func TestController_ListReplacedWholesale(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	ctx := context.Background()

	c.LoadList(ctx)
	c.Wait()

	api.mu.Lock()
	api.list = []propertyapi.Property{{ZPID: "9", StreetAddress: "9 Elm St"}}
	api.mu.Unlock()

	c.LoadList(ctx)
	c.Wait()
	assert.Equal(t, []propertyapi.Property{{ZPID: "9", StreetAddress: "9 Elm St"}}, c.Snapshot().Properties)
}

func TestController_SnapshotIsACopy(t *testing.T) {
	api := newFakeAPI()
	c := New(api)
	c.LoadList(context.Background())
	c.Wait()

	s := c.Snapshot()
	s.Properties[0].StreetAddress = "mutated"
	assert.Equal(t, "1 Main St", c.Snapshot().Properties[0].StreetAddress)
}

func TestController_InFlightCountsPendingFetches(t *testing.T) {
	api := newFakeAPI()
	gate := api.gate("1")
	c := New(api)

	c.SetLookupKey(context.Background(), "1")
	assert.Equal(t, 1, c.Snapshot().InFlight)

	close(gate)
	c.Wait()
	assert.Equal(t, 0, c.Snapshot().InFlight)
}

func TestChanNotifier_DropsWhenFull(t *testing.T) {
	ch := make(chan Event, 1)
	n := &ChanNotifier{Ch: ch}

	n.Notify(Event{Kind: EventLoaded})
	n.Notify(Event{Kind: EventFetchFailed}) // dropped

	require.Len(t, ch, 1)
	assert.Equal(t, EventLoaded, (<-ch).Kind)
}

func TestEmit_StampsTimestamp(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	var got []Event
	c := New(newFakeAPI(), WithNotifier(NotifierFunc(func(ev Event) { got = append(got, ev) })))
	c.now = func() time.Time { return fixed }

	c.SetLookupKey(context.Background(), "") // no change, no events
	c.emit(Event{Kind: EventLoaded, Target: TargetSummary})

	require.Len(t, got, 1)
	assert.Equal(t, fixed, got[0].Timestamp)
}
