// File: fake/client.go
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development, matching the
// predictable-and-controllable style the teacher used for its Transport
// double.
package fake

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-ws/api"
)

// Client is a controllable fake api.Client.
type Client struct {
	id     int64
	remote net.Addr
	local  net.Addr
	conn   net.Conn

	mu               sync.Mutex
	waitingOnRespose bool
	closed           bool
	closeCallbacks   []func()
	startErr         error
	starts           int
	stops            int
	lastStopTimeout  time.Duration
}

// NewClient returns a fake client with a TCP remote address and no waiting
// state, ready to be registered.
func NewClient(id int64) *Client {
	return &Client{
		id:     id,
		remote: &net.TCPAddr{IP: net.ParseIP("203.0.113.5"), Port: 40000 + int(id)},
		local:  &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 8080},
	}
}

// WithRemote overrides the remote address (e.g. to simulate loopback or a
// shared /56 block) and returns c for chaining.
func (c *Client) WithRemote(addr net.Addr) *Client {
	c.remote = addr
	return c
}

func (c *Client) SetWaitingOnResponse(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitingOnRespose = v
}

func (c *Client) SetStartError(err error) { c.startErr = err }

func (c *Client) ID() int64             { return c.id }
func (c *Client) RemoteAddress() net.Addr { return c.remote }
func (c *Client) LocalAddress() net.Addr  { return c.local }

func (c *Client) Start(api.DriverFactory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.starts++
	return c.startErr
}

func (c *Client) Stop(ctx context.Context, timeout time.Duration) {
	c.mu.Lock()
	c.stops++
	c.lastStopTimeout = timeout
	c.mu.Unlock()
	c.Close()
}

func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	cbs := append([]func(){}, c.closeCallbacks...)
	c.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	for _, cb := range cbs {
		cb()
	}
	return nil
}

func (c *Client) IsWaitingOnResponse() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waitingOnRespose
}

func (c *Client) OnClose(cb func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCallbacks = append(c.closeCallbacks, cb)
}

func (c *Client) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) Starts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

func (c *Client) Stops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stops
}

// ClientFactory manufactures fake.Client values with sequential ids,
// standing in for the per-connection HTTP driver the real factory wires up.
type ClientFactory struct {
	next     int64
	Clients  []*Client
	mu       sync.Mutex
	OnCreate func(*Client)
}

func NewClientFactory() *ClientFactory { return &ClientFactory{} }

// Count reports how many clients this factory has created so far. Safe for
// concurrent use, unlike reading the Clients slice directly.
func (f *ClientFactory) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Clients)
}

// ClientAt returns the nth created client (0-indexed). Safe for concurrent
// use once the caller has established that n clients exist, e.g. via
// Count.
func (f *ClientFactory) ClientAt(n int) *Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Clients[n]
}

func (f *ClientFactory) Create(conn net.Conn, _ api.RequestHandler, _ api.ErrorHandler, _ api.Logger, _ api.Options, _ api.TimeoutWheelHandle) (api.Client, error) {
	id := atomic.AddInt64(&f.next, 1)
	c := NewClient(id)
	if conn != nil {
		c.remote = conn.RemoteAddr()
		c.local = conn.LocalAddr()
		c.conn = conn
	}
	f.mu.Lock()
	f.Clients = append(f.Clients, c)
	f.mu.Unlock()
	if f.OnCreate != nil {
		f.OnCreate(c)
	}
	return c, nil
}
