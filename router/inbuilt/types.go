package inbuilt

import "github.com/indigo-web/indigo-core/http"

type (
	// Handler produces a response for the request. Returning nil results in an empty
	// 200 OK response.
	Handler func(request *http.Request) *http.Response
	// ErrorHandler produces a response for an error: either an http.ParseError, or
	// status.ErrNotFound when no route matched.
	ErrorHandler func(err error) *http.Response
	// Middleware wraps the handler. It decides on its own whether and when to call next.
	Middleware func(next Handler, request *http.Request) *http.Response
)
