package domain

import "fmt"

// RRClass represents a DNS class code (almost always IN for Internet).
// Unrecognized codes are carried through unchanged rather than rejected.
type RRClass uint16

// DNS Resource Record Class constants per RFC 1035 §3.2.4.
const (
	RRClassIN  RRClass = 1   // IN - Internet
	RRClassCS  RRClass = 2   // CS - CSNET (obsolete)
	RRClassCH  RRClass = 3   // CH - Chaos
	RRClassHS  RRClass = 4   // HS - Hesiod
	RRClassANY RRClass = 255 // * - Any class (query only)
)

// IsValid returns true if the RRClass is one of the recognized class codes.
func (c RRClass) IsValid() bool {
	switch c {
	case RRClassIN, RRClassCS, RRClassCH, RRClassHS, RRClassANY:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	case RRClassCS:
		return "CS"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	case RRClassANY:
		return "*"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
	}
}
