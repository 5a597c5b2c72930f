package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrCircularReference indicates a compression offset was revisited while
	// resolving a single name chain.
	ErrCircularReference = errors.New("circular compression pointer reference")

	// ErrReservedOpCode indicates an opcode value that does not fit in the
	// four bit header field was encountered during encode.
	ErrReservedOpCode = errors.New("opcode exceeds four bit range")

	// ErrNameLengthExceeded indicates a domain name label longer than 63
	// bytes was encountered during encode.
	ErrNameLengthExceeded = errors.New("domain name label exceeds 63 bytes")
)

// ParseError reports malformed or truncated wire data caught during decode.
// Offset is the byte position in the input at which the problem was
// detected.
type ParseError struct {
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dns parse error at offset %d: %s", e.Offset, e.Reason)
}

// parseErrorf constructs a ParseError at the given offset.
func parseErrorf(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// EncodingError reports a low-level conversion failure, such as invalid
// UTF-8 in a TXT payload or a value that cannot be represented in its wire
// field.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "dns encoding error: " + e.Reason
}

// encodingErrorf constructs an EncodingError.
func encodingErrorf(format string, args ...any) error {
	return &EncodingError{Reason: fmt.Sprintf(format, args...)}
}
