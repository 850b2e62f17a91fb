package inbuilt

import (
	"github.com/indigo-web/indigo-core/http"
)

// traceRequest answers TRACE requests for which no handler is registered by echoing the
// request line back.
func traceRequest(request *http.Request) *http.Response {
	return http.Bytes(renderRequestLine(request, nil))
}

func renderRequestLine(request *http.Request, buff []byte) []byte {
	buff = append(buff, request.Method.String()...)
	buff = append(buff, ' ')
	buff = append(buff, request.Path...)

	if request.Query != nil {
		buff = append(buff, '?')
		buff = append(buff, request.Query.Raw()...)
	}

	return append(buff, " HTTP/1.1\r\n"...)
}
