package inbuilt

import (
	"errors"
	"strings"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/status"
	"github.com/indigo-web/indigo-core/internal/pathlib"
)

const indexFile = "index.html"

// Static adds a catcher of prefix, that automatically returns files from defined root
// directory. Only GET and HEAD requests are served, the rest get 404. Paths ending with
// a slash are served with index.html. Paths escaping the root (via dot-dot segments or
// symlinks) are answered with 403 Forbidden and never touch the filesystem outside root.
func (r *Router) Static(prefix, root string, middlewares ...Middleware) *Router {
	prefix = trimTrailingSlash(prefix)
	full := r.prefix + prefix

	return r.Catch(prefix, func(request *http.Request) *http.Response {
		if request.Method != method.GET && request.Method != method.HEAD {
			return r.root.notFound.handler(request)
		}

		relative := strings.TrimPrefix(request.Path, full)
		if len(relative) == 0 || relative[len(relative)-1] == '/' {
			relative += indexFile
		}

		path, err := pathlib.Resolve(root, relative)
		switch {
		case errors.Is(err, pathlib.ErrEscapesRoot):
			return http.Error(status.ErrForbidden)
		case err != nil:
			return http.Error(status.ErrInternalServerError)
		}

		response, err := http.NewResponse().TryFile(path)
		switch {
		case errors.Is(err, status.ErrNotFound):
			return r.root.notFound.handler(request)
		case err != nil:
			return http.Error(err)
		}

		return response
	}, middlewares...)
}
