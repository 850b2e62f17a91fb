package http

import (
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/query"
)

// Request represents a parsed HTTP request line.
//
// Request doesn't own any memory: Path and Query are views into the buffer the request
// was parsed from. The owner of that buffer (normally the server's connection handler)
// keeps it alive and unmodified until the router returns a response, and the request
// must not be used after that. Copy values out (e.g. strings.Clone) in order to keep them.
type Request struct {
	// Method is an enum representing the request method.
	Method method.Method
	// Path is the request target up to the first '?', always starting with a slash. It is
	// neither decoded nor normalized.
	Path string
	// Query is nil if the target has no '?' at all, otherwise it lazily parses everything
	// after it.
	Query *query.Query
}

// NewRequest is mostly useful in tests, as requests are normally produced by the parser.
func NewRequest(m method.Method, path string, q *query.Query) *Request {
	return &Request{
		Method: m,
		Path:   path,
		Query:  q,
	}
}
