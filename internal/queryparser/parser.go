package queryparser

import (
	"bytes"

	"github.com/indigo-web/utils/uf"
)

// Parse walks the raw query and calls cb for every key-value pair in order of appearance.
// Pairs are separated by '&', empty segments are skipped. A pair is split on its first '=',
// and a pair without one yields an empty value. Keys and values are views into data, so
// they are valid as long as data is.
func Parse(data []byte, cb func(key, value string)) {
	for len(data) > 0 {
		segment := data
		if amp := bytes.IndexByte(data, '&'); amp != -1 {
			segment, data = data[:amp], data[amp+1:]
		} else {
			data = nil
		}

		if len(segment) == 0 {
			continue
		}

		eq := bytes.IndexByte(segment, '=')
		if eq == -1 {
			cb(uf.B2S(segment), "")
			continue
		}

		cb(uf.B2S(segment[:eq]), uf.B2S(segment[eq+1:]))
	}
}
