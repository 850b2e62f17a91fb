package inbuilt

import "github.com/indigo-web/indigo-core/http/method"

/*
This file is responsible for methods predicates - shortcuts for Route method
with already set method taken from name of the method
*/

func (r *Router) Get(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.GET, path, handler, middlewares...)
}

func (r *Router) Head(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.HEAD, path, handler, middlewares...)
}

func (r *Router) Post(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.POST, path, handler, middlewares...)
}

func (r *Router) Put(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.PUT, path, handler, middlewares...)
}

func (r *Router) Delete(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.DELETE, path, handler, middlewares...)
}

func (r *Router) Connect(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.CONNECT, path, handler, middlewares...)
}

func (r *Router) Options(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.OPTIONS, path, handler, middlewares...)
}

func (r *Router) Trace(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.TRACE, path, handler, middlewares...)
}

func (r *Router) Patch(path string, handler Handler, middlewares ...Middleware) *Router {
	return r.Route(method.PATCH, path, handler, middlewares...)
}
