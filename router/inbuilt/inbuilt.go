package inbuilt

import (
	"sort"
	"strings"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/router"
)

var _ router.Router = new(Router)

type (
	route struct {
		owner       *Router
		handler     Handler
		middlewares []Middleware
		composed    Handler
	}

	methodsMap [method.Count + 1]*route

	catcher struct {
		prefix string
		route  *route
	}
)

// Router is a built-in implementation of router.Router interface. Requests are matched by
// their exact (method, path) pair first, then by the longest registered catcher prefix.
// Everything else results in 404 Not Found. HEAD requests fall back to GET handlers, and
// responses to HEAD requests never carry a body.
//
// All the registrations must be done before the server starts. After that the router is
// only read, so it's safe to be used by concurrent connections.
type Router struct {
	root        *Router
	prefix      string
	routes      map[string]*methodsMap
	catchers    []catcher
	middlewares []Middleware
	notFound    *route
	trace       *route
	errHandler  ErrorHandler
}

// New constructs a new instance of inbuilt router
func New() *Router {
	r := &Router{
		routes:     make(map[string]*methodsMap),
		errHandler: defaultErrorHandler,
	}
	r.root = r

	r.notFound = r.newRoute(notFoundVia(defaultErrorHandler), nil)
	r.trace = r.newRoute(traceRequest, nil)

	return r
}

// Group returns a child router registering everything under the prefix. The child shares
// the routing table with its parent, and inherits the parent's middlewares as they are at
// the moment of the call. Middlewares added to the child later don't affect the parent.
// Routing "/" in a group registers the prefix itself.
func (r *Router) Group(prefix string) *Router {
	return &Router{
		root:        r.root,
		prefix:      r.prefix + trimTrailingSlash(prefix),
		routes:      r.routes,
		middlewares: append([]Middleware(nil), r.middlewares...),
	}
}

// Route is a base method for registering handlers. Registering the same pair twice
// overrides the previous handler.
func (r *Router) Route(
	m method.Method, path string, handler Handler, middlewares ...Middleware,
) *Router {
	if m == method.Unknown {
		panic("inbuilt: cannot route unknown method")
	}

	path = r.path(path)
	methods, found := r.routes[path]
	if !found {
		methods = new(methodsMap)
		r.routes[path] = methods
	}

	methods[m] = r.newRoute(handler, middlewares)

	return r
}

// Catch registers a handler for every request whose path is the prefix itself or lies
// below it (segment-wise, so /static catches /static/x but not /staticx), regardless of
// the method. Exact routes always win over catchers, and longer prefixes win over shorter.
func (r *Router) Catch(prefix string, handler Handler, middlewares ...Middleware) *Router {
	root := r.root
	root.catchers = append(root.catchers, catcher{
		prefix: r.prefix + trimTrailingSlash(prefix),
		route:  r.newRoute(handler, middlewares),
	})

	sort.SliceStable(root.catchers, func(i, j int) bool {
		return len(root.catchers[i].prefix) > len(root.catchers[j].prefix)
	})

	return r
}

// Use adds global middlewares. They wrap every handler of the router, already registered or
// not, and are applied before the route-specific ones. For the root router this includes the
// not found and TRACE handlers, for a group only the routes registered through it.
func (r *Router) Use(middlewares ...Middleware) *Router {
	r.middlewares = append(r.middlewares, middlewares...)
	r.root.recompose()

	return r
}

// AllErrors is used to be passed into Router.RouteError, indicating by that,
// that the handler must handle ALL errors
const AllErrors = status.Code(0)

// RouteError overrides the response for status.NotFound (no matching route) and
// status.BadRequest (malformed request), or both if AllErrors is passed. Other codes
// are ignored, as the router never produces them on its own. Error handlers are shared
// between a router and all its groups.
func (r *Router) RouteError(handler ErrorHandler, codes ...status.Code) *Router {
	root := r.root

	for _, code := range codes {
		switch code {
		case AllErrors:
			root.errHandler = handler
			root.notFound.handler = notFoundVia(handler)
		case status.NotFound:
			root.notFound.handler = notFoundVia(handler)
		case status.BadRequest:
			root.errHandler = handler
		}
	}

	root.recompose()

	return r
}

// OnRequest finds the handler and calls it. Responses to HEAD requests are rebuilt without
// the body, so the one returned by the handler is left untouched.
func (r *Router) OnRequest(request *http.Request) *http.Response {
	response := r.root.lookup(request.Method, request.Path).composed(request)
	if response == nil {
		response = http.NewResponse()
	}

	if request.Method == method.HEAD {
		return http.Code(response.Reveal().Code)
	}

	return response
}

// OnError is called on parse errors. By default, responds 400 Bad Request.
func (r *Router) OnError(err error) *http.Response {
	response := r.root.errHandler(err)
	if response == nil {
		response = http.Code(status.BadRequest)
	}

	return response
}

func (r *Router) lookup(m method.Method, path string) *route {
	if methods, found := r.routes[path]; found {
		if handler := methods[m]; handler != nil {
			return handler
		}

		if m == method.HEAD && methods[method.GET] != nil {
			return methods[method.GET]
		}
	}

	if m == method.TRACE {
		return r.trace
	}

	for _, c := range r.catchers {
		if matchesPrefix(c.prefix, path) {
			return c.route
		}
	}

	return r.notFound
}

func (r *Router) newRoute(handler Handler, middlewares []Middleware) *route {
	rt := &route{
		owner:       r,
		handler:     handler,
		middlewares: middlewares,
	}
	rt.compose()

	return rt
}

func (rt *route) compose() {
	rt.composed = compose(rt.handler, rt.owner.middlewares, rt.middlewares)
}

// path joins the group prefix with the path.
func (r *Router) path(path string) string {
	if len(r.prefix) > 0 && path == "/" {
		return r.prefix
	}

	return r.prefix + path
}

func (r *Router) recompose() {
	for _, methods := range r.routes {
		for _, rt := range methods {
			if rt != nil {
				rt.compose()
			}
		}
	}

	for _, c := range r.catchers {
		c.route.compose()
	}

	r.notFound.compose()
	r.trace.compose()
}

// compose makes a single Handler out of the chain. The first global middleware is the
// outermost one, the handler itself is the innermost.
func compose(handler Handler, global, local []Middleware) Handler {
	chain := make([]Middleware, 0, len(global)+len(local))
	chain = append(append(chain, global...), local...)

	for i := len(chain) - 1; i >= 0; i-- {
		mware, next := chain[i], handler
		handler = func(request *http.Request) *http.Response {
			return mware(next, request)
		}
	}

	return handler
}

func matchesPrefix(prefix, path string) bool {
	if prefix == "" {
		return true
	}

	return path == prefix || (strings.HasPrefix(path, prefix) && path[len(prefix)] == '/')
}

func trimTrailingSlash(prefix string) string {
	return strings.TrimRight(prefix, "/")
}

func defaultErrorHandler(err error) *http.Response {
	return http.Error(err)
}

func notFoundVia(handler ErrorHandler) Handler {
	return func(*http.Request) *http.Response {
		return handler(status.ErrNotFound)
	}
}
