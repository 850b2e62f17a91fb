package inbuilt

import (
	"testing"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/query"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/stretchr/testify/require"
)

func respondWith(body string) Handler {
	return func(*http.Request) *http.Response {
		return http.String(body)
	}
}

func request(m method.Method, path string) *http.Request {
	return http.NewRequest(m, path, nil)
}

func TestRouter_Routing(t *testing.T) {
	r := New().
		Get("/", respondWith("index")).
		Get("/hello", respondWith("get hello")).
		Post("/hello", respondWith("post hello"))

	t.Run("by method and path", func(t *testing.T) {
		require.Equal(t, "index", string(r.OnRequest(request(method.GET, "/")).Reveal().Body))
		require.Equal(t, "get hello", string(r.OnRequest(request(method.GET, "/hello")).Reveal().Body))
		require.Equal(t, "post hello", string(r.OnRequest(request(method.POST, "/hello")).Reveal().Body))
	})

	t.Run("unknown path", func(t *testing.T) {
		resp := r.OnRequest(request(method.GET, "/nope"))
		require.Equal(t, status.NotFound, resp.Reveal().Code)
		require.Empty(t, resp.Reveal().Body)
	})

	t.Run("unknown method for known path", func(t *testing.T) {
		resp := r.OnRequest(request(method.DELETE, "/hello"))
		require.Equal(t, status.NotFound, resp.Reveal().Code)
	})

	t.Run("paths are matched exactly", func(t *testing.T) {
		require.Equal(t, status.NotFound, r.OnRequest(request(method.GET, "/hello/")).Reveal().Code)
		require.Equal(t, status.NotFound, r.OnRequest(request(method.GET, "/HELLO")).Reveal().Code)
	})

	t.Run("empty router", func(t *testing.T) {
		require.Equal(t, status.NotFound, New().OnRequest(request(method.GET, "/")).Reveal().Code)
	})

	t.Run("nil response", func(t *testing.T) {
		r := New().Get("/nil", func(*http.Request) *http.Response {
			return nil
		})
		require.Equal(t, status.OK, r.OnRequest(request(method.GET, "/nil")).Reveal().Code)
	})

	t.Run("unknown method panics", func(t *testing.T) {
		require.Panics(t, func() {
			New().Route(method.Unknown, "/", respondWith(""))
		})
	})
}

func TestRouter_Head(t *testing.T) {
	t.Run("falls back to get", func(t *testing.T) {
		r := New().Get("/", respondWith("index"))
		resp := r.OnRequest(request(method.HEAD, "/"))
		require.Equal(t, status.OK, resp.Reveal().Code)
		require.Empty(t, resp.Reveal().Body)
	})

	t.Run("explicit head handler", func(t *testing.T) {
		r := New().
			Get("/", respondWith("index")).
			Head("/", func(*http.Request) *http.Response {
				return http.Code(status.NoContent).String("dropped anyway")
			})
		resp := r.OnRequest(request(method.HEAD, "/"))
		require.Equal(t, status.NoContent, resp.Reveal().Code)
		require.Empty(t, resp.Reveal().Body)
	})

	t.Run("no get handler", func(t *testing.T) {
		r := New().Post("/", respondWith("index"))
		require.Equal(t, status.NotFound, r.OnRequest(request(method.HEAD, "/")).Reveal().Code)
	})

	t.Run("shared response keeps its body", func(t *testing.T) {
		shared := http.String("cached")
		r := New().Get("/", func(*http.Request) *http.Response {
			return shared
		})

		require.Empty(t, r.OnRequest(request(method.HEAD, "/")).Reveal().Body)
		require.Equal(t, "cached", string(r.OnRequest(request(method.GET, "/")).Reveal().Body))
		require.Equal(t, "cached", string(shared.Reveal().Body))
	})
}

func TestRouter_Trace(t *testing.T) {
	r := New().
		Get("/", respondWith("index")).
		Trace("/custom", respondWith("custom trace"))

	t.Run("echoes request line", func(t *testing.T) {
		resp := r.OnRequest(request(method.TRACE, "/"))
		require.Equal(t, status.OK, resp.Reveal().Code)
		require.Equal(t, "TRACE / HTTP/1.1\r\n", string(resp.Reveal().Body))
	})

	t.Run("unregistered path", func(t *testing.T) {
		resp := r.OnRequest(request(method.TRACE, "/nowhere"))
		require.Equal(t, "TRACE /nowhere HTTP/1.1\r\n", string(resp.Reveal().Body))
	})

	t.Run("with query", func(t *testing.T) {
		req := http.NewRequest(method.TRACE, "/search", query.New([]byte("q=indigo&page=2")))
		resp := r.OnRequest(req)
		require.Equal(t, "TRACE /search?q=indigo&page=2 HTTP/1.1\r\n", string(resp.Reveal().Body))
	})

	t.Run("empty query", func(t *testing.T) {
		req := http.NewRequest(method.TRACE, "/search", query.New(nil))
		require.Equal(t, "TRACE /search? HTTP/1.1\r\n", string(r.OnRequest(req).Reveal().Body))
	})

	t.Run("registered handler wins", func(t *testing.T) {
		resp := r.OnRequest(request(method.TRACE, "/custom"))
		require.Equal(t, "custom trace", string(resp.Reveal().Body))
	})
}

func TestRouter_Group(t *testing.T) {
	var trace []string
	tracing := func(name string) Middleware {
		return func(next Handler, request *http.Request) *http.Response {
			trace = append(trace, name)
			return next(request)
		}
	}

	r := New().Use(tracing("root"))
	api := r.Group("/api").Use(tracing("api"))
	api.Get("/", respondWith("api index"))
	api.Get("/users", respondWith("users"))

	v1 := api.Group("/v1/")
	v1.Post("/users", respondWith("v1 users"))
	r.Get("/users", respondWith("root users"))

	for _, tc := range []struct {
		Method method.Method
		Path   string
		Want   string
		Trace  []string
	}{
		{method.GET, "/api", "api index", []string{"root", "api"}},
		{method.GET, "/api/users", "users", []string{"root", "api"}},
		{method.POST, "/api/v1/users", "v1 users", []string{"root", "api"}},
		{method.GET, "/users", "root users", []string{"root"}},
	} {
		t.Run(tc.Path, func(t *testing.T) {
			trace = nil
			resp := r.OnRequest(request(tc.Method, tc.Path))
			require.Equal(t, tc.Want, string(resp.Reveal().Body))
			require.Equal(t, tc.Trace, trace)
		})
	}

	t.Run("group middlewares don't leak into parent", func(t *testing.T) {
		trace = nil
		v1.Use(tracing("v1"))
		r.OnRequest(request(method.GET, "/api/users"))
		require.Equal(t, []string{"root", "api"}, trace)

		trace = nil
		r.OnRequest(request(method.POST, "/api/v1/users"))
		require.Equal(t, []string{"root", "api", "v1"}, trace)
	})

	t.Run("served by the group itself", func(t *testing.T) {
		require.Equal(t, "users", string(api.OnRequest(request(method.GET, "/api/users")).Reveal().Body))
		require.Equal(t, status.NotFound, api.OnRequest(request(method.GET, "/users/x")).Reveal().Code)
	})

	t.Run("errors are shared", func(t *testing.T) {
		api.RouteError(func(error) *http.Response {
			return http.Code(status.NotFound).String("custom")
		}, status.NotFound)

		require.Equal(t, "custom", string(r.OnRequest(request(method.GET, "/missing")).Reveal().Body))
	})

	t.Run("catchers", func(t *testing.T) {
		api.Catch("/files", respondWith("files"))
		require.Equal(t, "files", string(r.OnRequest(request(method.GET, "/api/files/a.txt")).Reveal().Body))
		require.Equal(t, status.NotFound, r.OnRequest(request(method.GET, "/files/a.txt")).Reveal().Code)
	})
}

func TestRouter_Errors(t *testing.T) {
	t.Run("default bad request", func(t *testing.T) {
		for _, err := range []error{
			http.ErrInvalidEncoding, http.ErrInvalidRequest, http.ErrInvalidMethod,
			http.ErrInvalidProtocol, http.ErrInvalidPath,
		} {
			resp := New().OnError(err)
			require.Equal(t, status.BadRequest, resp.Reveal().Code, err.Error())
		}
	})

	t.Run("custom bad request", func(t *testing.T) {
		r := New().RouteError(func(err error) *http.Response {
			return http.Code(status.BadRequest).String(err.Error())
		}, status.BadRequest)

		resp := r.OnError(http.ErrInvalidProtocol)
		require.Equal(t, "invalid protocol", string(resp.Reveal().Body))
		require.Equal(t, status.NotFound, r.OnRequest(request(method.GET, "/")).Reveal().Code)
		require.Empty(t, r.OnRequest(request(method.GET, "/")).Reveal().Body)
	})

	t.Run("custom not found", func(t *testing.T) {
		r := New().RouteError(func(error) *http.Response {
			return http.Code(status.NotFound).String("nothing here")
		}, status.NotFound)

		resp := r.OnRequest(request(method.GET, "/"))
		require.Equal(t, status.NotFound, resp.Reveal().Code)
		require.Equal(t, "nothing here", string(resp.Reveal().Body))
		require.Equal(t, status.BadRequest, r.OnError(http.ErrInvalidPath).Reveal().Code)
	})

	t.Run("all errors", func(t *testing.T) {
		r := New().RouteError(func(err error) *http.Response {
			return http.Code(status.Teapot).String(err.Error())
		}, AllErrors)

		require.Equal(t, "not found", string(r.OnRequest(request(method.GET, "/")).Reveal().Body))
		require.Equal(t, "invalid path", string(r.OnError(http.ErrInvalidPath).Reveal().Body))
	})

	t.Run("nil error response", func(t *testing.T) {
		r := New().RouteError(func(error) *http.Response {
			return nil
		}, status.BadRequest)
		require.Equal(t, status.BadRequest, r.OnError(http.ErrInvalidPath).Reveal().Code)
	})
}

func TestRouter_Middlewares(t *testing.T) {
	var trace []string
	tracing := func(name string) Middleware {
		return func(next Handler, request *http.Request) *http.Response {
			trace = append(trace, name+">")
			resp := next(request)
			trace = append(trace, "<"+name)
			return resp
		}
	}

	r := New().
		Get("/", func(*http.Request) *http.Response {
			trace = append(trace, "handler")
			return nil
		}, tracing("local")).
		Use(tracing("global"))

	t.Run("order", func(t *testing.T) {
		trace = nil
		r.OnRequest(request(method.GET, "/"))
		require.Equal(t, []string{"global>", "local>", "handler", "<local", "<global"}, trace)
	})

	t.Run("applied to routes registered later", func(t *testing.T) {
		r.Get("/later", func(*http.Request) *http.Response {
			trace = append(trace, "later")
			return nil
		})

		trace = nil
		r.OnRequest(request(method.GET, "/later"))
		require.Equal(t, []string{"global>", "later", "<global"}, trace)
	})

	t.Run("applied to not found", func(t *testing.T) {
		trace = nil
		resp := r.OnRequest(request(method.GET, "/missing"))
		require.Equal(t, status.NotFound, resp.Reveal().Code)
		require.Equal(t, []string{"global>", "<global"}, trace)
	})
}

func TestRouter_Catch(t *testing.T) {
	r := New().
		Get("/static/special", respondWith("exact")).
		Catch("/static", respondWith("static")).
		Catch("/static/deep/", respondWith("deep"))

	for _, tc := range []struct {
		Path string
		Want string
	}{
		{"/static", "static"},
		{"/static/", "static"},
		{"/static/file.txt", "static"},
		{"/static/special", "exact"},
		{"/static/deep", "deep"},
		{"/static/deep/file.txt", "deep"},
	} {
		t.Run(tc.Path, func(t *testing.T) {
			require.Equal(t, tc.Want, string(r.OnRequest(request(method.GET, tc.Path)).Reveal().Body))
		})
	}

	t.Run("not a segment boundary", func(t *testing.T) {
		require.Equal(t, status.NotFound, r.OnRequest(request(method.GET, "/staticx")).Reveal().Code)
	})

	t.Run("root catcher", func(t *testing.T) {
		r := New().Catch("/", respondWith("anything"))
		require.Equal(t, "anything", string(r.OnRequest(request(method.PUT, "/a/b/c")).Reveal().Body))
	})
}
