package router

import "github.com/indigo-web/indigo-core/http"

// Router is the only thing the server needs in order to dispatch requests. Exactly one of
// the methods is called per connection, and exactly one response is written back.
//
// Baseline servers call a Router sequentially, so it may hold mutable state across calls
// without synchronization. A server tuned to serve connections concurrently calls it from
// multiple goroutines at once, so such state must be synchronized explicitly then.
type Router interface {
	// OnRequest is called for every successfully parsed request. The request is valid
	// only until the method returns.
	OnRequest(request *http.Request) *http.Response
	// OnError is called when the request could not be parsed. The error is an
	// http.ParseError. The router must still produce a response, which is normally
	// 400 Bad Request.
	OnError(err error) *http.Response
}
