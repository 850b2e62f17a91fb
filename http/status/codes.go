package status

type (
	Code   uint16
	Status string
)

// HTTP status codes as registered with IANA.
// See: https://www.iana.org/assignments/http-status-codes/http-status-codes.xhtml
const (
	Continue           Code = 100 // RFC 9110, 15.2.1
	SwitchingProtocols Code = 101 // RFC 9110, 15.2.2

	OK             Code = 200 // RFC 9110, 15.3.1
	Created        Code = 201 // RFC 9110, 15.3.2
	Accepted       Code = 202 // RFC 9110, 15.3.3
	NoContent      Code = 204 // RFC 9110, 15.3.5
	ResetContent   Code = 205 // RFC 9110, 15.3.6
	PartialContent Code = 206 // RFC 9110, 15.3.7

	MultipleChoices   Code = 300 // RFC 9110, 15.4.1
	MovedPermanently  Code = 301 // RFC 9110, 15.4.2
	Found             Code = 302 // RFC 9110, 15.4.3
	SeeOther          Code = 303 // RFC 9110, 15.4.4
	NotModified       Code = 304 // RFC 9110, 15.4.5
	TemporaryRedirect Code = 307 // RFC 9110, 15.4.8
	PermanentRedirect Code = 308 // RFC 9110, 15.4.9

	BadRequest                  Code = 400 // RFC 9110, 15.5.1
	Unauthorized                Code = 401 // RFC 9110, 15.5.2
	PaymentRequired             Code = 402 // RFC 9110, 15.5.3
	Forbidden                   Code = 403 // RFC 9110, 15.5.4
	NotFound                    Code = 404 // RFC 9110, 15.5.5
	MethodNotAllowed            Code = 405 // RFC 9110, 15.5.6
	NotAcceptable               Code = 406 // RFC 9110, 15.5.7
	RequestTimeout              Code = 408 // RFC 9110, 15.5.9
	Conflict                    Code = 409 // RFC 9110, 15.5.10
	Gone                        Code = 410 // RFC 9110, 15.5.11
	LengthRequired              Code = 411 // RFC 9110, 15.5.12
	RequestEntityTooLarge       Code = 413 // RFC 9110, 15.5.14
	RequestURITooLong           Code = 414 // RFC 9110, 15.5.15
	UnsupportedMediaType        Code = 415 // RFC 9110, 15.5.16
	Teapot                      Code = 418 // RFC 9110, 15.5.19 (Unused)
	UnprocessableEntity         Code = 422 // RFC 9110, 15.5.21
	UpgradeRequired             Code = 426 // RFC 9110, 15.5.22
	TooManyRequests             Code = 429 // RFC 6585, 4
	RequestHeaderFieldsTooLarge Code = 431 // RFC 6585, 5

	InternalServerError     Code = 500 // RFC 9110, 15.6.1
	NotImplemented          Code = 501 // RFC 9110, 15.6.2
	BadGateway              Code = 502 // RFC 9110, 15.6.3
	ServiceUnavailable      Code = 503 // RFC 9110, 15.6.4
	GatewayTimeout          Code = 504 // RFC 9110, 15.6.5
	HTTPVersionNotSupported Code = 505 // RFC 9110, 15.6.6
)

const unknownStatus Status = "Unknown Status Code"

var texts = map[Code]Status{
	Continue:           "Continue",
	SwitchingProtocols: "Switching Protocols",

	OK:             "OK",
	Created:        "Created",
	Accepted:       "Accepted",
	NoContent:      "No Content",
	ResetContent:   "Reset Content",
	PartialContent: "Partial Content",

	MultipleChoices:   "Multiple Choices",
	MovedPermanently:  "Moved Permanently",
	Found:             "Found",
	SeeOther:          "See Other",
	NotModified:       "Not Modified",
	TemporaryRedirect: "Temporary Redirect",
	PermanentRedirect: "Permanent Redirect",

	BadRequest:                  "Bad Request",
	Unauthorized:                "Unauthorized",
	PaymentRequired:             "Payment Required",
	Forbidden:                   "Forbidden",
	NotFound:                    "Not Found",
	MethodNotAllowed:            "Method Not Allowed",
	NotAcceptable:               "Not Acceptable",
	RequestTimeout:              "Request Timeout",
	Conflict:                    "Conflict",
	Gone:                        "Gone",
	LengthRequired:              "Length Required",
	RequestEntityTooLarge:       "Request Entity Too Large",
	RequestURITooLong:           "Request URI Too Long",
	UnsupportedMediaType:        "Unsupported Media Type",
	Teapot:                      "I'm a teapot",
	UnprocessableEntity:         "Unprocessable Entity",
	UpgradeRequired:             "Upgrade Required",
	TooManyRequests:             "Too Many Requests",
	RequestHeaderFieldsTooLarge: "Request Header Fields Too Large",

	InternalServerError:     "Internal Server Error",
	NotImplemented:          "Not Implemented",
	BadGateway:              "Bad Gateway",
	ServiceUnavailable:      "Service Unavailable",
	GatewayTimeout:          "Gateway Timeout",
	HTTPVersionNotSupported: "HTTP Version Not Supported",
}

// KnownCodes lists every code Text has a reason phrase for, in ascending order.
var KnownCodes = []Code{
	Continue, SwitchingProtocols,
	OK, Created, Accepted, NoContent, ResetContent, PartialContent,
	MultipleChoices, MovedPermanently, Found, SeeOther, NotModified, TemporaryRedirect,
	PermanentRedirect,
	BadRequest, Unauthorized, PaymentRequired, Forbidden, NotFound, MethodNotAllowed,
	NotAcceptable, RequestTimeout, Conflict, Gone, LengthRequired, RequestEntityTooLarge,
	RequestURITooLong, UnsupportedMediaType, Teapot, UnprocessableEntity, UpgradeRequired,
	TooManyRequests, RequestHeaderFieldsTooLarge,
	InternalServerError, NotImplemented, BadGateway, ServiceUnavailable, GatewayTimeout,
	HTTPVersionNotSupported,
}

// Text returns the reason phrase for the code. Codes outside the table get
// "Unknown Status Code".
func Text(code Code) Status {
	if text, found := texts[code]; found {
		return text
	}

	return unknownStatus
}
