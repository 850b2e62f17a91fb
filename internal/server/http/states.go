package http

type state uint8

const (
	eReading state = iota + 1
	eParsing
	eHandling
	eWriting
	eClosed
)

func (s state) String() string {
	switch s {
	case eReading:
		return "reading"
	case eParsing:
		return "parsing"
	case eHandling:
		return "handling"
	case eWriting:
		return "writing"
	case eClosed:
		return "closed"
	default:
		return "unknown"
	}
}
