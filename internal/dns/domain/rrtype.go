package domain

import "fmt"

// RRType represents a DNS resource record type code (e.g. A, AAAA, MX).
// Unrecognized codes are carried through unchanged rather than rejected.
type RRType uint16

// DNS Resource Record Type constants per RFC 1035 §3.2.2 and RFC 3596.
const (
	RRTypeA     RRType = 1   // A - IPv4 host address
	RRTypeNS    RRType = 2   // NS - Authoritative name server
	RRTypeMD    RRType = 3   // MD - Mail destination (obsolete, use MX)
	RRTypeMF    RRType = 4   // MF - Mail forwarder (obsolete, use MX)
	RRTypeCNAME RRType = 5   // CNAME - Canonical name
	RRTypeSOA   RRType = 6   // SOA - Start of authority
	RRTypeMB    RRType = 7   // MB - Mailbox domain name (experimental)
	RRTypeMG    RRType = 8   // MG - Mail group member (experimental)
	RRTypeMR    RRType = 9   // MR - Mail rename (experimental)
	RRTypeNULL  RRType = 10  // NULL - Null RR (experimental)
	RRTypeWKS   RRType = 11  // WKS - Well known service
	RRTypePTR   RRType = 12  // PTR - Domain name pointer
	RRTypeHINFO RRType = 13  // HINFO - Host information
	RRTypeMINFO RRType = 14  // MINFO - Mailbox information
	RRTypeMX    RRType = 15  // MX - Mail exchange
	RRTypeTXT   RRType = 16  // TXT - Text strings
	RRTypeAAAA  RRType = 28  // AAAA - IPv6 host address (RFC 3596)
	RRTypeAXFR  RRType = 252 // AXFR - Zone transfer request (query only)
	RRTypeMAILB RRType = 253 // MAILB - Mailbox-related records (query only)
	RRTypeMAILA RRType = 254 // MAILA - Mail agent RRs (obsolete, query only)
	RRTypeANY   RRType = 255 // * - All records (query only)
)

// IsValid returns true if the RRType is one of the recognized type codes.
func (t RRType) IsValid() bool {
	switch {
	case t >= RRTypeA && t <= RRTypeTXT:
		return true
	case t == RRTypeAAAA:
		return true
	case t >= RRTypeAXFR && t <= RRTypeANY:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRType.
// For unrecognized types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	switch t {
	case RRTypeA:
		return "A"
	case RRTypeNS:
		return "NS"
	case RRTypeMD:
		return "MD"
	case RRTypeMF:
		return "MF"
	case RRTypeCNAME:
		return "CNAME"
	case RRTypeSOA:
		return "SOA"
	case RRTypeMB:
		return "MB"
	case RRTypeMG:
		return "MG"
	case RRTypeMR:
		return "MR"
	case RRTypeNULL:
		return "NULL"
	case RRTypeWKS:
		return "WKS"
	case RRTypePTR:
		return "PTR"
	case RRTypeHINFO:
		return "HINFO"
	case RRTypeMINFO:
		return "MINFO"
	case RRTypeMX:
		return "MX"
	case RRTypeTXT:
		return "TXT"
	case RRTypeAAAA:
		return "AAAA"
	case RRTypeAXFR:
		return "AXFR"
	case RRTypeMAILB:
		return "MAILB"
	case RRTypeMAILA:
		return "MAILA"
	case RRTypeANY:
		return "*"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
	}
}
