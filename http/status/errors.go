package status

import "errors"

// HTTPError is an error which knows what response code it must result in.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadRequest          = NewError(BadRequest, "bad request")
	ErrUnauthorized        = NewError(Unauthorized, "unauthorized")
	ErrForbidden           = NewError(Forbidden, "forbidden")
	ErrNotFound            = NewError(NotFound, "not found")
	ErrMethodNotAllowed    = NewError(MethodNotAllowed, "method not allowed")
	ErrInternalServerError = NewError(InternalServerError, "internal server error")
	ErrNotImplemented      = NewError(NotImplemented, "not implemented")
)

// ErrShutdown is returned by the accept loop when it was stopped on purpose.
var ErrShutdown = errors.New("server is shut down")
