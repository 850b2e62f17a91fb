package http1

import (
	"io"
	"strconv"

	"github.com/indigo-web/indigo-core/http"
	"github.com/indigo-web/indigo-core/http/status"
)

// AppendResponse appends the wire form of the response to buff and returns the extended
// buffer. The form is exactly the status line, an empty line and the body: no headers
// are emitted.
func AppendResponse(buff []byte, response *http.Response) []byte {
	fields := response.Reveal()

	buff = append(buff, protocol...)
	buff = append(buff, ' ')
	buff = strconv.AppendUint(buff, uint64(fields.Code), 10)
	buff = append(buff, ' ')
	buff = append(buff, status.Text(fields.Code)...)
	buff = append(buff, "\r\n\r\n"...)

	return append(buff, fields.Body...)
}

// Serializer renders responses into a reusable buffer and writes them out.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Write serializes the response and writes it fully into w.
func (s *Serializer) Write(w io.Writer, response *http.Response) error {
	s.buff = AppendResponse(s.buff[:0], response)

	return writeAll(w, s.buff)
}

// writeAll keeps writing until either everything is transmitted or an error happens.
// A write reporting no progress and no error is treated as io.ErrShortWrite, otherwise
// the loop would spin forever.
func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}

		if n == 0 {
			return io.ErrShortWrite
		}

		data = data[n:]
	}

	return nil
}
