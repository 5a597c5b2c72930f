package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// headerLen is the fixed size of the DNS message header.
const headerLen = 12

// rawHeader carries a decoded header together with the wire section counts
// that drive the section parse loops. The counts never reach the domain
// model; on encode they are rederived from the live section lengths.
type rawHeader struct {
	header  domain.Header
	qdCount uint16
	anCount uint16
	nsCount uint16
	arCount uint16
}

// readHeader decodes the 12 byte header: id, the 16 bit flag word in the
// exact order qr(1) opcode(4) aa(1) tc(1) rd(1) ra(1) z(1) ad(1) cd(1)
// rcode(4), then the four section counts. Opcode and rcode values outside
// the assigned sets are structurally valid and preserved as-is, never a
// decode failure.
func readHeader(r *byteReader) (rawHeader, error) {
	var rh rawHeader

	id, err := r.readUint16()
	if err != nil {
		return rh, err
	}
	rh.header.ID = id

	bits := newBitReader(r)
	read := func(width uint) uint16 {
		if err != nil {
			return 0
		}
		var v uint16
		v, err = bits.read(width)
		return v
	}

	rh.header.QR = read(1) == 1
	rh.header.OpCode = domain.OpCode(read(4))
	rh.header.AA = read(1) == 1
	rh.header.TC = read(1) == 1
	rh.header.RD = read(1) == 1
	rh.header.RA = read(1) == 1
	z := read(1)
	rh.header.AD = read(1) == 1
	rh.header.CD = read(1) == 1
	rh.header.RCode = domain.RCode(read(4))
	if err != nil {
		return rh, err
	}
	if z != 0 {
		return rh, parseErrorf(r.offset()-2, "reserved header bit is set")
	}

	if rh.qdCount, err = r.readUint16(); err != nil {
		return rh, err
	}
	if rh.anCount, err = r.readUint16(); err != nil {
		return rh, err
	}
	if rh.nsCount, err = r.readUint16(); err != nil {
		return rh, err
	}
	if rh.arCount, err = r.readUint16(); err != nil {
		return rh, err
	}
	return rh, nil
}

// writeHeader encodes the header of msg, deriving the four section counts
// from the live section lengths. Opcode and rcode values wider than four
// bits are fatal here: a caller can construct them programmatically, and
// writing them would corrupt neighboring flag bits.
func writeHeader(msg *domain.Message, buf *bytes.Buffer) (int, error) {
	h := msg.Header

	if h.OpCode > 0xF {
		return 0, ErrReservedOpCode
	}
	if h.RCode > 0xF {
		return 0, encodingErrorf("rcode %d exceeds four bit range", h.RCode)
	}

	var scratch [2]byte
	binary.BigEndian.PutUint16(scratch[:], h.ID)
	buf.Write(scratch[:])

	var b1 byte
	if h.QR {
		b1 |= 1 << 7
	}
	b1 |= byte(h.OpCode) << 3
	if h.AA {
		b1 |= 1 << 2
	}
	if h.TC {
		b1 |= 1 << 1
	}
	if h.RD {
		b1 |= 1
	}
	buf.WriteByte(b1)

	var b2 byte
	if h.RA {
		b2 |= 1 << 7
	}
	if h.AD {
		b2 |= 1 << 5
	}
	if h.CD {
		b2 |= 1 << 4
	}
	b2 |= byte(h.RCode)
	buf.WriteByte(b2)

	for _, count := range []int{
		len(msg.Questions),
		len(msg.Answers),
		len(msg.NameServers),
		len(msg.Additional),
	} {
		if count > 0xFFFF {
			return 0, encodingErrorf("section of %d records exceeds count field", count)
		}
		binary.BigEndian.PutUint16(scratch[:], uint16(count))
		buf.Write(scratch[:])
	}

	return headerLen, nil
}
