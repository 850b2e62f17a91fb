package http1

import (
	"bytes"
	"unicode/utf8"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/http/query"
	"github.com/indigo-web/utils/uf"
)

const protocol = "HTTP/1.1"

var crlf = []byte("\r\n")

// Parse turns the raw bytes into a request. Only the request line is parsed, everything
// after the first CRLF is ignored. Parse doesn't modify data and doesn't copy anything out
// of it: the returned request holds views into data, so data must stay alive and unchanged
// for as long as the request is in use.
//
// The checks are applied in order: encoding, request line shape, method, protocol, path.
// So the error always reports the first violated one.
func Parse(data []byte) (*http.Request, error) {
	if !utf8.Valid(data) {
		return nil, http.ErrInvalidEncoding
	}

	lineEnd := bytes.Index(data, crlf)
	if lineEnd == -1 {
		return nil, http.ErrInvalidRequest
	}

	methodToken, target, proto, ok := splitRequestLine(data[:lineEnd])
	if !ok {
		return nil, http.ErrInvalidRequest
	}

	m := method.Parse(uf.B2S(methodToken))
	if m == method.Unknown {
		return nil, http.ErrInvalidMethod
	}

	if uf.B2S(proto) != protocol {
		return nil, http.ErrInvalidProtocol
	}

	if len(target) == 0 || target[0] != '/' {
		return nil, http.ErrInvalidPath
	}

	request := &http.Request{
		Method: m,
		Path:   uf.B2S(target),
	}

	if q := bytes.IndexByte(target, '?'); q != -1 {
		request.Path = uf.B2S(target[:q])
		request.Query = query.New(target[q+1:])
	}

	return request, nil
}

// splitRequestLine splits the line on single spaces and succeeds only if there are
// exactly three tokens. Consecutive spaces produce empty tokens and thereby fail.
func splitRequestLine(line []byte) (methodToken, target, proto []byte, ok bool) {
	sp := bytes.IndexByte(line, ' ')
	if sp == -1 {
		return nil, nil, nil, false
	}

	methodToken, line = line[:sp], line[sp+1:]

	sp = bytes.IndexByte(line, ' ')
	if sp == -1 {
		return nil, nil, nil, false
	}

	target, proto = line[:sp], line[sp+1:]
	if bytes.IndexByte(proto, ' ') != -1 {
		return nil, nil, nil, false
	}

	return methodToken, target, proto, true
}
