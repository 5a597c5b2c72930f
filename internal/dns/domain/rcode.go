package domain

import "fmt"

// RCode is the four bit response code set as part of responses. Values above
// 5 are unassigned by RFC 1035 but representable; the wire codec rejects
// anything that does not fit in four bits at encode time.
type RCode uint8

// DNS response code constants per RFC 1035 §4.1.1.
const (
	RCodeNoError        RCode = 0 // No error condition
	RCodeFormatError    RCode = 1 // The name server was unable to interpret the query
	RCodeServerFailure  RCode = 2 // A problem with the name server
	RCodeNameError      RCode = 3 // The domain name referenced in the query does not exist
	RCodeNotImplemented RCode = 4 // The requested kind of query is not supported
	RCodeRefused        RCode = 5 // The name server refuses to perform the operation
)

// IsValid returns true if the RCode is one of the assigned values.
func (r RCode) IsValid() bool {
	return r <= RCodeRefused
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}
