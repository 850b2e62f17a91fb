package requestgen

import (
	"strconv"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/indigo-core/http/method"
	"github.com/indigo-web/indigo-core/kv"
)

// Params returns n query parameters with random keys and values.
func Params(n int) *kv.Storage {
	params := kv.NewPrealloc(n)

	for i := 0; i < n; i++ {
		params.Add("param"+strconv.Itoa(i)+"-"+uniuri.NewLen(8), uniuri.NewLen(16))
	}

	return params
}

// Query renders the parameters in the key=value&... form, without a leading question mark.
func Query(params *kv.Storage) (buff []byte) {
	for key, value := range params.Iter() {
		if len(buff) > 0 {
			buff = append(buff, '&')
		}

		buff = append(buff, key...)
		buff = append(buff, '=')
		buff = append(buff, value...)
	}

	return buff
}

// Generate returns a request without headers. The query is omitted if params are nil or empty.
func Generate(m method.Method, path string, params *kv.Storage) (request []byte) {
	request = append(request, m.String()...)
	request = append(request, ' ')
	request = append(request, path...)

	if params != nil && !params.Empty() {
		request = append(request, '?')
		request = append(request, Query(params)...)
	}

	return append(request, " HTTP/1.1\r\n\r\n"...)
}
