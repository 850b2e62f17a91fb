package middleware

import (
	"time"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/router/inbuilt"
	"github.com/rs/zerolog"
)

// LogRequests logs every request with its method, path, resulting code and the time
// the handler took.
func LogRequests(logger zerolog.Logger) inbuilt.Middleware {
	return func(next inbuilt.Handler, request *http.Request) *http.Response {
		start := time.Now()
		response := next(request)

		code := status.OK
		if response != nil {
			code = response.Reveal().Code
		}

		logger.Info().
			Str("method", request.Method.String()).
			Str("path", request.Path).
			Uint16("code", uint16(code)).
			Dur("took", time.Since(start)).
			Msg("request")

		return response
	}
}
