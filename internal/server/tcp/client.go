package tcp

import (
	"net"
	"time"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/indigo-core/config"
)

const idLength = 8

type Client interface {
	// Read makes exactly one read from the connection. The returned slice is backed by the
	// client's buffer, so it's valid only until the next Read.
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Remote() net.Addr
	// ID is a short random identifier, used to correlate log lines of a single connection.
	ID() string
	Close() error
}

type client struct {
	id           string
	conn         net.Conn
	buff         []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewClient(conn net.Conn, cfg config.NET, buff []byte) Client {
	return &client{
		id:           uniuri.NewLen(idLength),
		conn:         conn,
		buff:         buff,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}
}

func (c *client) Read() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	if err != nil {
		return nil, err
	}

	return c.buff[:n], nil
}

func (c *client) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}

	return c.conn.Write(b)
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Close() error {
	return c.conn.Close()
}
