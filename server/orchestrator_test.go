package server

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/momentics/hioload-ws/api"
	"github.com/momentics/hioload-ws/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoundEndpoint(t *testing.T) (api.Endpoint, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return api.Endpoint{DisplayAddress: ln.Addr().String(), Listener: ln, Scheme: api.SchemeHTTP}, ln.Addr().String()
}

func waitForCount(t *testing.T, fn func() int, want int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	require.Equal(t, want, fn())
}

// S1 - happy start/stop.
func TestOrchestrator_HappyStartStop(t *testing.T) {
	ep, _ := newBoundEndpoint(t)
	o := New()
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), api.DefaultOptions()))
	require.NoError(t, o.SetClientFactory(fake.NewClientFactory()))
	require.NoError(t, o.SetDriverFactory(fake.NewDriverFactory("http/1.1")))
	require.NoError(t, o.SetErrorHandler(&fake.ErrorHandler{}))

	assert.Equal(t, api.Stopped, o.State())
	require.NoError(t, o.Start())
	assert.Equal(t, api.Started, o.State())

	require.NoError(t, o.Stop(3*time.Second))
	assert.Equal(t, api.Stopped, o.State())
}

// S2 - admission cap: the third connection must be closed before entering
// the registry, and ClientCount must never exceed the limit.
func TestOrchestrator_AdmissionCap(t *testing.T) {
	ep, addr := newBoundEndpoint(t)
	o := New()
	opts := api.DefaultOptions()
	opts.ConnectionLimit = 2
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), opts))
	factory := fake.NewClientFactory()
	require.NoError(t, o.SetClientFactory(factory))
	require.NoError(t, o.Start())
	defer o.Stop(time.Second)

	var conns []net.Conn
	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	waitForCount(t, factory.Count, 3, time.Second)
	waitForCount(t, o.ClientCount, 2, time.Second)
}

// S3 - per-IP cap with loopback exemption: two loopback clients are both
// admitted; the second of two clients sharing a non-loopback /32 is
// rejected.
func TestOrchestrator_PerIPCapWithLoopbackExemption(t *testing.T) {
	ep, addr := newBoundEndpoint(t)
	o := New()
	opts := api.DefaultOptions()
	opts.ConnectionsPerIPLimit = 1
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), opts))

	factory := fake.NewClientFactory()
	remoteFor := []net.Addr{
		&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 1},
		&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 2},
		&net.TCPAddr{IP: net.ParseIP("203.0.113.5"), Port: 3},
		&net.TCPAddr{IP: net.ParseIP("203.0.113.5"), Port: 4},
	}
	idx := 0
	factory.OnCreate = func(c *fake.Client) {
		c.WithRemote(remoteFor[idx])
		idx++
	}
	require.NoError(t, o.SetClientFactory(factory))
	require.NoError(t, o.Start())
	defer o.Stop(time.Second)

	var conns []net.Conn
	for i := 0; i < 4; i++ {
		conn, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		conns = append(conns, conn)
		waitForCount(t, factory.Count, i+1, time.Second)
	}
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	waitForCount(t, o.ClientCount, 3, time.Second)
	assert.True(t, factory.ClientAt(0).Closed() == false)
	assert.True(t, factory.ClientAt(1).Closed() == false)
	assert.False(t, factory.ClientAt(2).Closed(), "first client from the non-loopback block is admitted")
	assert.True(t, factory.ClientAt(3).Closed(), "second client from the same non-loopback block is rejected")
}

// S4 - observer failure on start.
func TestOrchestrator_ObserverFailureOnStart(t *testing.T) {
	ep, _ := newBoundEndpoint(t)
	o := New()
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), api.DefaultOptions()))
	require.NoError(t, o.SetClientFactory(fake.NewClientFactory()))

	failing := fake.NewObserver()
	failing.StartErr = errors.New("boom")
	require.NoError(t, o.AttachObserver(failing))

	err := o.Start()
	require.Error(t, err)
	var agg *api.AggregateStartupFailure
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errs, 1)
	assert.Contains(t, agg.Errs[0].Error(), "boom")
	assert.Equal(t, api.Stopped, o.State())
}

// S5 - idle timeout: a client that never reports waiting-on-response is
// closed once its deadline passes. The wheel's deadline resolution is
// whole seconds (§3), so the budget below is expressed in seconds too
// rather than trying to observe sub-second sweeps.
func TestOrchestrator_IdleTimeoutCloses(t *testing.T) {
	ep, addr := newBoundEndpoint(t)
	o := New()
	opts := api.DefaultOptions()
	opts.TimeoutTick = 100 * time.Millisecond
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), opts))

	factory := fake.NewClientFactory()
	factory.OnCreate = func(c *fake.Client) {
		// Simulate the driver arming a one-second idle deadline through the
		// handle passed to ClientFactory.Create.
		go o.Touch(c.ID(), time.Now().Add(time.Second))
	}
	require.NoError(t, o.SetClientFactory(factory))
	require.NoError(t, o.Start())
	defer o.Stop(time.Second)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	waitForCount(t, factory.Count, 1, time.Second)
	waitForCount(t, o.ClientCount, 0, 3*time.Second)
	assert.True(t, factory.ClientAt(0).Closed())
	assert.Contains(t, o.RecentClosed(), factory.ClientAt(0).ID())
}

// S6 - a client reporting isWaitingOnResponse must not be closed while
// that holds true, even past its original deadline.
func TestOrchestrator_SlowHandlerDefersTimeout(t *testing.T) {
	ep, addr := newBoundEndpoint(t)
	o := New()
	opts := api.DefaultOptions()
	opts.TimeoutTick = 100 * time.Millisecond
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), opts))

	factory := fake.NewClientFactory()
	factory.OnCreate = func(c *fake.Client) {
		c.SetWaitingOnResponse(true)
		go o.Touch(c.ID(), time.Now().Add(time.Second))
	}
	require.NoError(t, o.SetClientFactory(factory))
	require.NoError(t, o.Start())
	defer o.Stop(time.Second)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	waitForCount(t, factory.Count, 1, time.Second)

	time.Sleep(2 * time.Second)
	assert.False(t, factory.ClientAt(0).Closed(), "a client waiting on its response must not be closed by the idle sweep")
	assert.Equal(t, 1, o.ClientCount())
}

func TestOrchestrator_ConfigureRejectsEmptyBindList(t *testing.T) {
	o := New()
	err := o.Configure(nil, fake.RequestHandler{}, fake.NewLogger(), api.DefaultOptions())
	assert.ErrorIs(t, err, api.ErrEmptyBindList)
}

func TestOrchestrator_MutatorsRejectAfterStart(t *testing.T) {
	ep, _ := newBoundEndpoint(t)
	o := New()
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), api.DefaultOptions()))
	require.NoError(t, o.SetClientFactory(fake.NewClientFactory()))
	require.NoError(t, o.Start())
	defer o.Stop(time.Second)

	err := o.AttachObserver(fake.NewObserver())
	var precondition *api.Error
	require.ErrorAs(t, err, &precondition)
}

// stop() called from Stopped is a no-op.
func TestOrchestrator_StopFromStoppedIsNoOp(t *testing.T) {
	o := New()
	assert.NoError(t, o.Stop(time.Second))
	assert.Equal(t, api.Stopped, o.State())
}

func TestOrchestrator_StopFromStartingFails(t *testing.T) {
	ep, _ := newBoundEndpoint(t)
	o := New()
	require.NoError(t, o.Configure([]api.Endpoint{ep}, fake.RequestHandler{}, fake.NewLogger(), api.DefaultOptions()))
	require.NoError(t, o.SetClientFactory(fake.NewClientFactory()))

	slow := fake.NewObserver()
	slow.StartDelay = 200 * time.Millisecond
	require.NoError(t, o.AttachObserver(slow))

	done := make(chan error, 1)
	go func() { done <- o.Start() }()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, api.Starting, o.State())

	err := o.Stop(time.Second)
	var precondition *api.Error
	require.ErrorAs(t, err, &precondition)

	require.NoError(t, <-done)
	require.NoError(t, o.Stop(time.Second))
}
