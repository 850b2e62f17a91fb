package simple

import (
	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/router"
)

var _ router.Router = new(Router)

type (
	Handler      func(*http.Request) *http.Response
	ErrorHandler func(error) *http.Response
)

// Router just passes everything to the functions it was constructed with.
type Router struct {
	handler    Handler
	errHandler ErrorHandler
}

// New returns a router calling handler for each request and errHandler for each parse error.
// If errHandler is nil, every parse error results in 400 Bad Request.
func New(handler Handler, errHandler ErrorHandler) *Router {
	if errHandler == nil {
		errHandler = badRequest
	}

	return &Router{
		handler:    handler,
		errHandler: errHandler,
	}
}

func (r *Router) OnRequest(request *http.Request) *http.Response {
	return r.handler(request)
}

func (r *Router) OnError(err error) *http.Response {
	return r.errHandler(err)
}

func badRequest(error) *http.Response {
	return http.Code(status.BadRequest)
}
