package indigo

import (
	"net"

	"github.com/indigo-web/indigo-core/config"
	"github.com/indigo-web/indigo-core/internal/protocol/http1"
	"github.com/indigo-web/indigo-core/internal/server/http"
	"github.com/indigo-web/indigo-core/internal/server/tcp"
)

func newReadBuff(s config.NET) []byte {
	return make([]byte, s.ReadBufferSize)
}

func newSerializer(s config.NET) *http1.Serializer {
	return http1.NewSerializer(make([]byte, 0, s.WriteBufferSize))
}

// newConnCallback returns the function serving every accepted connection. Sequential
// servers never serve two connections at once, so the buffers are allocated once and
// shared. Concurrent ones get fresh buffers per connection.
func newConnCallback(s config.NET, server *http.Server) tcp.OnConnection {
	if !s.Concurrent {
		readBuff, serializer := newReadBuff(s), newSerializer(s)

		return func(conn net.Conn) {
			server.Run(tcp.NewClient(conn, s, readBuff), serializer)
		}
	}

	return func(conn net.Conn) {
		server.Run(tcp.NewClient(conn, s, newReadBuff(s)), newSerializer(s))
	}
}
