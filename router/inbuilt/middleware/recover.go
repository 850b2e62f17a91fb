package middleware

import (
	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/router/inbuilt"
	"github.com/rs/zerolog"
)

// Recover catches any panics, and returns 500 Internal Server Error instead. The panic
// value is logged.
func Recover(logger zerolog.Logger) inbuilt.Middleware {
	return func(next inbuilt.Handler, request *http.Request) (response *http.Response) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("method", request.Method.String()).
					Str("path", request.Path).
					Msg("handler panicked")

				response = http.Error(status.ErrInternalServerError)
			}
		}()

		return next(request)
	}
}
