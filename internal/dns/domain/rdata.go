package domain

import (
	"fmt"
	"net/netip"
)

// RData is the typed payload of a resource record. The wire type code of a
// record is always derived from its payload variant via Type(), so the two
// can never disagree.
//
// The set of variants is closed: the codec fully understands A, CNAME, SOA,
// TXT and AAAA payloads; every other type is preserved verbatim as a
// RawRecord tagged with its numeric type code.
type RData interface {
	// Type returns the RRType code this payload is written as on the wire.
	Type() RRType

	fmt.Stringer
}

// ARecord is an IPv4 host address (RFC 1035 §3.4.1).
type ARecord struct {
	Addr netip.Addr
}

func (ARecord) Type() RRType { return RRTypeA }

func (r ARecord) String() string { return fmt.Sprintf("A(%s)", r.Addr) }

// CNAMERecord is the canonical name for an alias (RFC 1035 §3.3.1).
type CNAMERecord struct {
	Target string
}

func (CNAMERecord) Type() RRType { return RRTypeCNAME }

func (r CNAMERecord) String() string { return fmt.Sprintf("CNAME(%s)", r.Target) }

// SOARecord marks the start of a zone of authority (RFC 1035 §3.3.13).
type SOARecord struct {
	// MName is the name server that was the original or primary source of
	// data for this zone.
	MName string

	// RName specifies the mailbox of the person responsible for this zone.
	RName string

	// Serial is the version number of the original copy of the zone. It
	// wraps and should be compared using sequence space arithmetic.
	Serial uint32

	// Refresh is the interval in seconds before the zone should be refreshed.
	Refresh uint32

	// Retry is the interval in seconds before a failed refresh is retried.
	Retry uint32

	// Expire is the upper limit in seconds before the zone is no longer
	// authoritative.
	Expire uint32

	// Minimum is the minimum TTL exported with any RR from this zone.
	Minimum uint32
}

func (SOARecord) Type() RRType { return RRTypeSOA }

func (r SOARecord) String() string {
	return fmt.Sprintf("SOA(%s, %s, %d, %d, %d, %d, %d)",
		r.MName, r.RName, r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}

// TXTRecord holds text strings (RFC 1035 §3.3.14). The payload must be valid
// UTF-8; the decoder rejects anything else.
type TXTRecord struct {
	Text string
}

func (TXTRecord) Type() RRType { return RRTypeTXT }

func (r TXTRecord) String() string { return fmt.Sprintf("TXT(%s)", r.Text) }

// AAAARecord is an IPv6 host address (RFC 3596).
type AAAARecord struct {
	Addr netip.Addr
}

func (AAAARecord) Type() RRType { return RRTypeAAAA }

func (r AAAARecord) String() string { return fmt.Sprintf("AAAA(%s)", r.Addr) }

// RawRecord preserves the RDATA of any type the codec does not interpret,
// tagged with its numeric type code.
type RawRecord struct {
	Code RRType
	Data []byte
}

func (r RawRecord) Type() RRType { return r.Code }

func (r RawRecord) String() string { return fmt.Sprintf("Raw(%d: %x)", uint16(r.Code), r.Data) }
