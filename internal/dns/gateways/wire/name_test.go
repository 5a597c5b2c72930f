package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
)

func testCodec() *codec {
	return NewMessageCodec(log.NewNoopLogger())
}

func TestReadName_Labels(t *testing.T) {
	data := []byte{3, 'w', 'w', 'w', 6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0}
	tokens, err := readName(newByteReader(data))
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "www.google.com", testCodec().flattenName(tokens))
}

func TestReadName_RootName(t *testing.T) {
	tokens, err := readName(newByteReader([]byte{0}))
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Equal(t, "", testCodec().flattenName(tokens))
}

func TestReadName_PointerTerminatesSequence(t *testing.T) {
	// One label, then a pointer to offset 12. The trailing bytes must not be
	// consumed.
	data := []byte{3, 'f', 'o', 'o', 0xC0, 0x0C, 0xDE, 0xAD}
	r := newByteReader(data)
	tokens, err := readName(r)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, labelToken, tokens[0].kind)
	assert.Equal(t, pointerToken, tokens[1].kind)
	assert.Equal(t, uint16(12), tokens[1].offset)
	assert.Equal(t, 2, r.remaining())
}

func TestReadName_TruncatedLabel(t *testing.T) {
	_, err := readName(newByteReader([]byte{5, 'a', 'b'}))
	require.Error(t, err)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestResolveNames_DereferencesAgainstFullBuffer(t *testing.T) {
	// The full buffer carries "example.com" at offset 4; the name under test
	// is "www" followed by a pointer to it.
	full := append([]byte{0xAA, 0xBB, 0xCC, 0xDD},
		[]byte{7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}...)

	tokens, err := readName(newByteReader([]byte{3, 'w', 'w', 'w', 0xC0, 0x04}))
	require.NoError(t, err)

	require.NoError(t, resolveNames(full, tokens, map[uint16]struct{}{}))
	assert.Equal(t, "www.example.com", testCodec().flattenName(tokens))
}

func TestResolveNames_ChainedPointers(t *testing.T) {
	// Offset 0: "com" root. Offset 5: "example" + pointer to 0.
	full := []byte{
		3, 'c', 'o', 'm', 0,
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 0xC0, 0x00,
	}

	tokens, err := readName(newByteReader([]byte{3, 'w', 'w', 'w', 0xC0, 0x05}))
	require.NoError(t, err)

	require.NoError(t, resolveNames(full, tokens, map[uint16]struct{}{}))
	assert.Equal(t, "www.example.com", testCodec().flattenName(tokens))
}

func TestResolveNames_SelfReferenceFails(t *testing.T) {
	full := []byte{0xC0, 0x00}
	tokens, err := readName(newByteReader(full))
	require.NoError(t, err)

	err = resolveNames(full, tokens, map[uint16]struct{}{})
	assert.ErrorIs(t, err, ErrCircularReference)
}

func TestResolveNames_MutualLoopFails(t *testing.T) {
	// Offset 0 points at offset 2, which points back at offset 0.
	full := []byte{0xC0, 0x02, 0xC0, 0x00}
	tokens, err := readName(newByteReader(full))
	require.NoError(t, err)

	err = resolveNames(full, tokens, map[uint16]struct{}{})
	assert.ErrorIs(t, err, ErrCircularReference)
}

func TestResolveNames_PointerBeyondBuffer(t *testing.T) {
	full := []byte{0xC0, 0x50}
	tokens, err := readName(newByteReader(full))
	require.NoError(t, err)

	err = resolveNames(full, tokens, map[uint16]struct{}{})
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestWriteName_RoundTripsLabels(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeName("www.google.com", &buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t,
		[]byte{3, 'w', 'w', 'w', 6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0},
		buf.Bytes())
}

func TestWriteName_EmptyName(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeName("", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []byte{0}, buf.Bytes())
}

func TestWriteName_LabelLimit(t *testing.T) {
	longest := strings.Repeat("a", 63)
	var buf bytes.Buffer
	_, err := writeName(longest+".com", &buf)
	assert.NoError(t, err)

	tooLong := strings.Repeat("a", 64)
	buf.Reset()
	_, err = writeName(tooLong+".com", &buf)
	assert.ErrorIs(t, err, ErrNameLengthExceeded)
}

func TestFlattenName_NestedResolvedSegments(t *testing.T) {
	tokens := []nameToken{
		{kind: labelToken, label: "www"},
		{kind: resolvedToken, resolved: []nameToken{
			{kind: labelToken, label: "example"},
			{kind: resolvedToken, resolved: []nameToken{
				{kind: labelToken, label: "com"},
			}},
		}},
	}
	assert.Equal(t, "www.example.com", testCodec().flattenName(tokens))
}

func TestFlattenName_UnresolvedPointerIsSkipped(t *testing.T) {
	// An unresolved pointer at flatten time is an internal invariant
	// violation: it is logged and skipped, never turned into a value error.
	tokens := []nameToken{
		{kind: labelToken, label: "www"},
		{kind: pointerToken, offset: 12},
	}
	assert.Equal(t, "www", testCodec().flattenName(tokens))
}
