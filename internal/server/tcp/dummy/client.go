package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/indigo-core/internal/server/tcp"
)

var _ tcp.Client = new(Client)

// Client is an in-memory tcp.Client. Every read returns the next piece of data it was
// initialised with, and io.EOF when none are left. Everything written is collected.
type Client struct {
	data     [][]byte
	pointer  int
	written  []byte
	closed   bool
	readErr  error
	writeErr error
}

func NewClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

// NewNopClient returns a client that has nothing to read.
func NewNopClient() *Client {
	return NewClient()
}

// FailRead makes every Read return the error.
func (c *Client) FailRead(err error) *Client {
	c.readErr = err
	return c
}

// FailWrite makes every Write return the error.
func (c *Client) FailWrite(err error) *Client {
	c.writeErr = err
	return c
}

func (c *Client) Read() ([]byte, error) {
	switch {
	case c.closed:
		return nil, net.ErrClosed
	case c.readErr != nil:
		return nil, c.readErr
	case c.pointer >= len(c.data):
		return nil, io.EOF
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(b []byte) (int, error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	if c.writeErr != nil {
		return 0, c.writeErr
	}

	c.written = append(c.written, b...)
	return len(b), nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 16100}
}

func (*Client) ID() string {
	return "dummy"
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// Written returns everything that was written into the client so far.
func (c *Client) Written() string {
	return string(c.written)
}

func (c *Client) Closed() bool {
	return c.closed
}
