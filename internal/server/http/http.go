package http

import (
	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/internal/metrics"
	"github.com/indigo-web/indigo-core/internal/protocol/http1"
	"github.com/indigo-web/indigo-core/internal/server/tcp"
	"github.com/indigo-web/indigo-core/router"
	"github.com/rs/zerolog"
)

type Server struct {
	router  router.Router
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewServer(r router.Router, logger zerolog.Logger, m *metrics.Metrics) *Server {
	return &Server{
		router:  r,
		logger:  logger,
		metrics: m,
	}
}

// Run serves a single request on the client and closes it afterwards. Exactly one
// response is written, unless reading the request fails.
func (s *Server) Run(client tcp.Client, serializer *http1.Serializer) {
	var (
		data     []byte
		request  *http.Request
		response *http.Response
		err      error
	)

	logger := s.logger.With().
		Str("conn", client.ID()).
		Stringer("remote", client.Remote()).
		Logger()

	for state := eReading; state != eClosed; {
		switch state {
		case eReading:
			data, err = client.Read()
			if err != nil {
				logger.Warn().Err(err).Msg("read failed")
				s.metrics.IOError("read")
				state = eClosed
				break
			}

			state = eParsing
		case eParsing:
			request, err = http1.Parse(data)
			if err != nil {
				logger.Debug().Str("kind", kindOf(err)).Msg("malformed request")
				s.metrics.ParseError(err)
				response = s.onError(err)
				state = eWriting
				break
			}

			state = eHandling
		case eHandling:
			response = s.onRequest(request)
			state = eWriting
		case eWriting:
			if err = serializer.Write(client, response); err != nil {
				logger.Warn().Err(err).Msg("write failed")
				s.metrics.IOError("write")
			} else {
				s.metrics.Response(response.Reveal().Code)
			}

			state = eClosed
		default:
			panic("BUG: unexpected connection state: " + state.String())
		}
	}

	if err = client.Close(); err != nil {
		logger.Debug().Err(err).Msg("close failed")
	}
}

func (s *Server) onRequest(request *http.Request) *http.Response {
	if response := s.router.OnRequest(request); response != nil {
		return response
	}

	return http.Respond()
}

func (s *Server) onError(err error) *http.Response {
	if response := s.router.OnError(err); response != nil {
		return response
	}

	return http.Code(status.BadRequest)
}

func kindOf(err error) string {
	if parseErr, ok := err.(http.ParseError); ok {
		return parseErr.Kind()
	}

	return err.Error()
}
