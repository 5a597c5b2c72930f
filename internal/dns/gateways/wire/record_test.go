package wire

import (
	"bytes"
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// rawTestRecord parses a record from data and interprets it against full.
func rawTestRecord(t *testing.T, full, data []byte) (domain.ResourceRecord, error) {
	t.Helper()
	rr, err := readResourceRecord(newByteReader(data))
	require.NoError(t, err)
	require.NoError(t, resolveNames(full, rr.name, map[uint16]struct{}{}))
	return testCodec().recordFromRaw(full, rr)
}

func TestRecordFromRaw_A(t *testing.T) {
	data := []byte{
		3, 'f', 'o', 'o', 3, 'c', 'o', 'm', 0,
		0x00, 0x01, // A
		0x00, 0x01, // IN
		0x00, 0x00, 0x02, 0x58, // ttl 600
		0x00, 0x04,
		155, 33, 17, 68,
	}
	record, err := rawTestRecord(t, data, data)
	require.NoError(t, err)

	assert.Equal(t, "foo.com", record.Name)
	assert.Equal(t, domain.RRClassIN, record.Class)
	assert.Equal(t, uint32(600), record.TTL)
	assert.Equal(t, domain.ARecord{Addr: netip.MustParseAddr("155.33.17.68")}, record.Data)
	assert.Equal(t, domain.RRTypeA, record.Data.Type())
}

func TestRecordFromRaw_AUndersizedRDATA(t *testing.T) {
	data := []byte{
		0, // root name
		0x00, 0x01,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x02,
		1, 2,
	}
	_, err := rawTestRecord(t, data, data)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestRecordFromRaw_CNAMEWithEmbeddedPointer(t *testing.T) {
	// The full message carries "example.com" at offset 2; the record's CNAME
	// RDATA holds "www" plus a pointer to it. RDATA pointers are absolute
	// message offsets, so resolution must run against full, not the RDATA
	// slice.
	full := []byte{
		0xAA, 0xBB,
		7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0,
	}
	data := []byte{
		0, // root name
		0x00, 0x05, // CNAME
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x3C,
		0x00, 0x06,
		3, 'w', 'w', 'w', 0xC0, 0x02,
	}
	record, err := rawTestRecord(t, full, data)
	require.NoError(t, err)
	assert.Equal(t, domain.CNAMERecord{Target: "www.example.com"}, record.Data)
}

func TestRecordFromRaw_SOA(t *testing.T) {
	data := []byte{
		3, 'f', 'o', 'o', 0,
		0x00, 0x06, // SOA
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x26, // rdlength 38
		2, 'n', 's', 3, 'f', 'o', 'o', 0, // mname
		4, 'm', 'a', 'i', 'l', 3, 'f', 'o', 'o', 0, // rname
		0x00, 0x00, 0x00, 0x01, // serial
		0x00, 0x00, 0x0E, 0x10, // refresh 3600
		0x00, 0x00, 0x01, 0x2C, // retry 300
		0x00, 0x03, 0xF4, 0x80, // expire 259200
		0x00, 0x00, 0x00, 0x3C, // minimum 60
	}
	record, err := rawTestRecord(t, data, data)
	require.NoError(t, err)

	want := domain.SOARecord{
		MName:   "ns.foo",
		RName:   "mail.foo",
		Serial:  1,
		Refresh: 3600,
		Retry:   300,
		Expire:  259200,
		Minimum: 60,
	}
	assert.Equal(t, want, record.Data)
}

func TestRecordFromRaw_TXT(t *testing.T) {
	data := []byte{
		0,
		0x00, 0x10, // TXT
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x05,
		'h', 'e', 'l', 'l', 'o',
	}
	record, err := rawTestRecord(t, data, data)
	require.NoError(t, err)
	assert.Equal(t, domain.TXTRecord{Text: "hello"}, record.Data)
}

func TestRecordFromRaw_TXTInvalidUTF8(t *testing.T) {
	data := []byte{
		0,
		0x00, 0x10,
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x02,
		0xFF, 0xFE,
	}
	_, err := rawTestRecord(t, data, data)
	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr), "invalid UTF-8 must be a decode error, got %v", err)
}

func TestRecordFromRaw_AAAAUsesRecordRDATA(t *testing.T) {
	// The RDATA sits deep in the message; the decoded address must come from
	// it, not from the first 16 bytes of the buffer.
	addr := netip.MustParseAddr("2001:db8::ff00:42:8329")
	a16 := addr.As16()

	data := append([]byte{
		3, 'v', '6', 'x', 0,
		0x00, 0x1C, // AAAA
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x10,
	}, a16[:]...)
	record, err := rawTestRecord(t, data, data)
	require.NoError(t, err)
	assert.Equal(t, domain.AAAARecord{Addr: addr}, record.Data)
}

func TestRecordFromRaw_UnknownTypePreservedAsRaw(t *testing.T) {
	data := []byte{
		0,
		0x00, 0x29, // OPT (41), not interpreted
		0x10, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x04,
		0xDE, 0xAD, 0xBE, 0xEF,
	}
	record, err := rawTestRecord(t, data, data)
	require.NoError(t, err)

	raw, ok := record.Data.(domain.RawRecord)
	require.True(t, ok)
	assert.Equal(t, domain.RRType(41), raw.Code)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, raw.Data)
	assert.Equal(t, domain.RRClass(4096), record.Class)
}

func TestWriteResourceRecord_ScratchBufferLength(t *testing.T) {
	rr := domain.ResourceRecord{
		Name:  "foo.com",
		Data:  domain.TXTRecord{Text: "hi"},
		Class: domain.RRClassIN,
		TTL:   60,
	}
	var buf bytes.Buffer
	n, err := writeResourceRecord(rr, &buf)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), n)

	// rdlength precedes the payload and must match it exactly.
	b := buf.Bytes()
	assert.Equal(t, []byte{0x00, 0x02}, b[len(b)-4:len(b)-2])
	assert.Equal(t, []byte("hi"), b[len(b)-2:])
}

func TestWriteRData_PerVariant(t *testing.T) {
	tests := []struct {
		name string
		data domain.RData
		want []byte
	}{
		{
			name: "A",
			data: domain.ARecord{Addr: netip.MustParseAddr("142.250.71.68")},
			want: []byte{142, 250, 71, 68},
		},
		{
			name: "CNAME",
			data: domain.CNAMERecord{Target: "ns1.foo"},
			want: []byte{3, 'n', 's', '1', 3, 'f', 'o', 'o', 0},
		},
		{
			name: "TXT",
			data: domain.TXTRecord{Text: "v=spf1"},
			want: []byte("v=spf1"),
		},
		{
			name: "AAAA",
			data: domain.AAAARecord{Addr: netip.MustParseAddr("::1")},
			want: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		},
		{
			name: "Raw",
			data: domain.RawRecord{Code: 41, Data: []byte{1, 2, 3}},
			want: []byte{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := writeRData(tt.data, &buf)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.Bytes())
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestWriteRData_RejectsNonIPv4A(t *testing.T) {
	var buf bytes.Buffer
	_, err := writeRData(domain.ARecord{Addr: netip.MustParseAddr("::1")}, &buf)
	var encErr *EncodingError
	assert.True(t, errors.As(err, &encErr))
}
