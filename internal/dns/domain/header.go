package domain

// Header is the DNS message header per RFC 1035 §4.1.1, with the AD and CD
// extension bits from RFC 2535 / RFC 6840. Section counts are not stored
// here: the wire codec derives them from the live section lengths of the
// enclosing Message at encode time.
type Header struct {
	// ID is a 16 bit identifier assigned by the program that generates any
	// kind of query. It is copied into the corresponding reply so the
	// requester can match up replies to outstanding queries.
	ID uint16

	// QR specifies whether this message is a query (false) or a response (true).
	QR bool

	// OpCode specifies the kind of query in this message.
	OpCode OpCode

	// AA - Authoritative Answer - valid in responses, specifies that the
	// responding name server is an authority for the domain name in question.
	AA bool

	// TC - TrunCation - specifies that this message was truncated due to
	// length greater than that permitted on the transmission channel.
	TC bool

	// RD - Recursion Desired - may be set in a query and is copied into the
	// response. If set, it directs the name server to pursue the query
	// recursively.
	RD bool

	// RA - Recursion Available - set or cleared in a response, denotes
	// whether recursive query support is available in the name server.
	RA bool

	// AD - Authentic Data (RFC 2535) - indicates in a response that all data
	// in the answer and authority sections has been authenticated by the
	// server according to its policies.
	AD bool

	// CD - Checking Disabled (RFC 2535) - indicates in a query that pending
	// (non-authenticated) data is acceptable to the resolver.
	CD bool

	// RCode is the response code.
	RCode RCode
}
