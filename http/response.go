package http

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/indigo-web/indigo-core/http/status"
	json "github.com/json-iterator/go"
)

// Fields are the response internals, exposed via Response.Reveal.
type Fields struct {
	Code status.Code
	Body []byte
}

// Response is a status code with an optional body. The body is always owned by the
// response itself and never aliases a request buffer, so a response stays valid after
// the request it was produced for is gone.
type Response struct {
	fields Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and no body.
func NewResponse() *Response {
	return &Response{
		fields: Fields{
			Code: status.OK,
		},
	}
}

// Code sets a Response code. The reason phrase is looked up from the status table
// at serialization time.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// String sets the response's body to a copy of the passed string
func (r *Response) String(body string) *Response {
	r.fields.Body = append(r.fields.Body[:0], body...)
	return r
}

// Bytes sets the response's body to a copy of the passed slice
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = append(r.fields.Body[:0], body...)
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// Discard drops the body, leaving only the status code.
func (r *Response) Discard() *Response {
	r.fields.Body = nil
	return r
}

// TryFile reads the whole file into the body. Missing files and directories result in
// status.ErrNotFound, any other failure in status.ErrInternalServerError.
func (r *Response) TryFile(path string) (*Response, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return r, status.ErrNotFound
		}

		return r, status.ErrInternalServerError
	}

	if stat.IsDir() {
		return r, status.ErrNotFound
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return r, status.ErrInternalServerError
	}

	r.fields.Body = content

	return r, nil
}

// File does the same as TryFile does, except returned error is being implicitly wrapped
// by Error
func (r *Response) File(path string) *Response {
	resp, err := r.TryFile(path)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// TryJSON serializes the model into the body
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = r.fields.Body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r, err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error sets the status code corresponding to the error and drops the body. If passed err
// is nil, nothing will happen. status.HTTPError carries its own code, ParseError results in
// 400 Bad Request and anything else in 500 Internal Server Error.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	var (
		httpErr  status.HTTPError
		parseErr ParseError
	)

	switch {
	case errors.As(err, &httpErr):
		return r.Discard().Code(httpErr.Code)
	case errors.As(err, &parseErr):
		return r.Discard().Code(status.BadRequest)
	default:
		return r.Discard().Code(status.InternalServerError)
	}
}

// Reveal returns the response internals
func (r *Response) Reveal() Fields {
	return r.fields
}

// Respond is a shorthand for NewResponse
func Respond() *Response {
	return NewResponse()
}

// Code is a predicate to NewResponse().Code(...)
func Code(code status.Code) *Response {
	return NewResponse().Code(code)
}

// String is a predicate to NewResponse().String(...)
func String(str string) *Response {
	return NewResponse().String(str)
}

// Bytes is a predicate to NewResponse().Bytes(...)
func Bytes(b []byte) *Response {
	return NewResponse().Bytes(b)
}

// File is a predicate to NewResponse().File(...)
func File(path string) *Response {
	return NewResponse().File(path)
}

// JSON is a predicate to NewResponse().JSON(...)
func JSON(model any) *Response {
	return NewResponse().JSON(model)
}

// Error is a predicate to NewResponse().Error(...)
func Error(err error) *Response {
	return NewResponse().Error(err)
}
