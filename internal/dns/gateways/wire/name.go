package wire

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxLabelLen is the RFC 1035 limit on a single label: the length octet
// shares its top two bits with the compression tag, leaving six bits.
const maxLabelLen = 63

// nameKind discriminates the three decode-time states of a name token.
type nameKind uint8

const (
	// labelToken is a literal label read directly from the stream.
	labelToken nameKind = iota

	// pointerToken is an unresolved 14 bit compression offset into the full
	// message buffer.
	pointerToken

	// resolvedToken is a pointer that has been replaced by the token
	// sequence found at its target offset.
	resolvedToken
)

// nameToken is a transient decode-time intermediate for one component of a
// domain name. Token lists only exist between the structural parse and the
// resolution pass; they are always flattened to a plain dotted string
// before leaving this package.
type nameToken struct {
	kind     nameKind
	label    string
	offset   uint16
	resolved []nameToken
}

// readName reads one wire-format name as a token list. Each token starts
// with two tag bits: 11 introduces a 14 bit compression offset, which
// terminates the sequence; anything else folds into a six bit label length,
// where zero terminates the sequence (root) and any other value consumes
// that many bytes of label content.
func readName(r *byteReader) ([]nameToken, error) {
	var tokens []nameToken
	for {
		bits := newBitReader(r)
		tag, err := bits.read(2)
		if err != nil {
			return nil, err
		}
		if tag == 0b11 {
			offset, err := bits.read(14)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, nameToken{kind: pointerToken, offset: offset})
			return tokens, nil
		}
		length, err := bits.read(6)
		if err != nil {
			return nil, err
		}
		length |= tag << 6
		if length == 0 {
			return tokens, nil
		}
		label, err := r.take(int(length))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(label) {
			return nil, encodingErrorf("label at offset %d is not valid UTF-8", r.offset()-int(length))
		}
		tokens = append(tokens, nameToken{kind: labelToken, label: string(label)})
	}
}

// resolveNames rewrites every pointer token in tokens into a resolved
// subsequence by recursively decoding labels at the pointer's absolute
// offset in full, the complete original message buffer. seen tracks offsets
// already followed for the current top-level name; revisiting one means the
// pointer chain loops, which fails with ErrCircularReference instead of
// recursing forever. The seen set also bounds recursion depth by the number
// of distinct valid offsets in the buffer.
func resolveNames(full []byte, tokens []nameToken, seen map[uint16]struct{}) error {
	for i := range tokens {
		if tokens[i].kind != pointerToken {
			continue
		}
		offset := tokens[i].offset
		if _, ok := seen[offset]; ok {
			return fmt.Errorf("%w: offset %d already followed", ErrCircularReference, offset)
		}
		seen[offset] = struct{}{}
		if int(offset) >= len(full) {
			return parseErrorf(int(offset), "compression pointer beyond end of message")
		}
		sub, err := readName(newByteReader(full[offset:]))
		if err != nil {
			return err
		}
		if err := resolveNames(full, sub, seen); err != nil {
			return err
		}
		tokens[i] = nameToken{kind: resolvedToken, resolved: sub}
	}
	return nil
}

// flattenName collapses a resolved token list into a dotted string. A
// pointer token surviving to this point means the resolution pass was
// skipped or incomplete; that is an internal invariant violation, so it is
// logged and the token skipped rather than surfaced as a value error.
func (c *codec) flattenName(tokens []nameToken) string {
	var sb strings.Builder
	for _, t := range tokens {
		switch t.kind {
		case labelToken:
			sb.WriteString(t.label)
			sb.WriteByte('.')
		case resolvedToken:
			sb.WriteString(c.flattenName(t.resolved))
		case pointerToken:
			c.logger.Error(map[string]any{
				"offset": t.offset,
			}, "unresolved compression pointer reached flatten")
		}
	}
	return strings.TrimSuffix(sb.String(), ".")
}

// writeName encodes a dotted name as length-prefixed labels followed by a
// zero terminator. Compression pointers are never emitted; every name is
// written fully expanded even when it duplicates an earlier one.
func writeName(s string, buf *bytes.Buffer) (int, error) {
	n := 0
	if s != "" {
		for _, label := range strings.Split(s, ".") {
			if len(label) > maxLabelLen {
				return 0, fmt.Errorf("%w: %q is %d bytes", ErrNameLengthExceeded, label, len(label))
			}
			if len(label) == 0 {
				continue
			}
			buf.WriteByte(byte(len(label)))
			buf.WriteString(label)
			n += 1 + len(label)
		}
	}
	buf.WriteByte(0)
	return n + 1, nil
}
