// Package wire implements the DNS message wire format per RFC 1035 §4,
// including the AD and CD header bits from RFC 2535 / RFC 6840. It decodes
// untrusted byte buffers into domain.Message values and encodes messages
// back to bytes.
//
// Decoding is a two-pass operation: a structural parse of all four record
// sections followed by a compression-pointer resolution pass against the
// complete original buffer. Encoding is a single pass and never emits
// compression pointers.
package wire

import (
	"bytes"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// MaxUDPPayload is the classic 512 byte DNS-over-UDP payload limit. The
// encoder reports the total length of what it wrote but does not truncate
// oversized messages or set the TC bit; that is left to callers.
const MaxUDPPayload = 512

// MessageCodec converts between raw DNS wire data and domain messages.
type MessageCodec interface {
	// Decode parses a complete DNS message from data.
	Decode(data []byte) (domain.Message, error)

	// Encode appends the wire form of msg to buf and returns the number of
	// bytes written.
	Encode(msg domain.Message, buf *bytes.Buffer) (int, error)
}

// codec implements MessageCodec. It is stateless between calls; one
// instance may be shared across goroutines.
type codec struct {
	logger log.Logger
}

// NewMessageCodec creates a codec using the provided logger. The logger is
// only used for diagnostic output; it never affects codec results.
func NewMessageCodec(logger log.Logger) *codec {
	return &codec{logger: logger}
}

var _ MessageCodec = (*codec)(nil)
