package http

// ParseError is the kind of failure the request-line parser ran into. It carries no
// details except the kind itself, so values can be compared directly or via errors.Is.
type ParseError uint8

const (
	// ErrInvalidEncoding means the buffer isn't valid UTF-8.
	ErrInvalidEncoding ParseError = iota + 1
	// ErrInvalidRequest means there's no terminated request line, or it doesn't consist
	// of exactly three space-separated tokens.
	ErrInvalidRequest
	// ErrInvalidMethod means the method token isn't one of the standard methods.
	ErrInvalidMethod
	// ErrInvalidProtocol means the version token isn't HTTP/1.1.
	ErrInvalidProtocol
	// ErrInvalidPath means the request target doesn't start with a slash.
	ErrInvalidPath
)

func (p ParseError) Error() string {
	switch p {
	case ErrInvalidEncoding:
		return "invalid encoding"
	case ErrInvalidRequest:
		return "invalid request"
	case ErrInvalidMethod:
		return "invalid method"
	case ErrInvalidProtocol:
		return "invalid protocol"
	case ErrInvalidPath:
		return "invalid path"
	default:
		return "unknown parse error"
	}
}

// Kind returns a short machine-friendly name, used as a metrics label and in logs.
func (p ParseError) Kind() string {
	switch p {
	case ErrInvalidEncoding:
		return "InvalidEncoding"
	case ErrInvalidRequest:
		return "InvalidRequest"
	case ErrInvalidMethod:
		return "InvalidMethod"
	case ErrInvalidProtocol:
		return "InvalidProtocol"
	case ErrInvalidPath:
		return "InvalidPath"
	default:
		return "Unknown"
	}
}
