package domain

import "fmt"

// OpCode is the four bit header field that specifies the kind of query in a
// message. It is set by the originator of a query and copied into the
// response. Values above 2 are unassigned but representable; the wire codec
// rejects anything that does not fit in four bits at encode time.
type OpCode uint8

// DNS OpCode constants per RFC 1035 §4.1.1.
const (
	OpCodeQuery  OpCode = 0 // A standard query
	OpCodeIQuery OpCode = 1 // An inverse query
	OpCodeStatus OpCode = 2 // A server status request
)

// IsValid returns true if the OpCode is one of the assigned values.
func (o OpCode) IsValid() bool {
	return o <= OpCodeStatus
}

// String returns the textual representation of the OpCode.
func (o OpCode) String() string {
	switch o {
	case OpCodeQuery:
		return "QUERY"
	case OpCodeIQuery:
		return "IQUERY"
	case OpCodeStatus:
		return "STATUS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
