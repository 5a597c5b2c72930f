package wire

import (
	"bytes"
	"encoding/binary"
	"net/netip"
	"unicode/utf8"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// rawRecord is one structurally parsed resource record: its name may still
// contain unresolved compression pointers and its RDATA is uninterpreted.
type rawRecord struct {
	name  []nameToken
	rtype domain.RRType
	class domain.RRClass
	ttl   uint32
	rdata []byte
}

// readResourceRecord parses one record entry: name, type, class, ttl,
// rdlength and exactly rdlength bytes of RDATA.
func readResourceRecord(r *byteReader) (rawRecord, error) {
	var rr rawRecord

	name, err := readName(r)
	if err != nil {
		return rr, err
	}
	rr.name = name

	rtype, err := r.readUint16()
	if err != nil {
		return rr, err
	}
	rr.rtype = domain.RRType(rtype)

	class, err := r.readUint16()
	if err != nil {
		return rr, err
	}
	rr.class = domain.RRClass(class)

	if rr.ttl, err = r.readUint32(); err != nil {
		return rr, err
	}

	rdlength, err := r.readUint16()
	if err != nil {
		return rr, err
	}
	if rr.rdata, err = r.take(int(rdlength)); err != nil {
		return rr, err
	}
	return rr, nil
}

// recordFromRaw interprets a record's RDATA according to its type and
// flattens its name. full is the complete original message buffer:
// RDATA-embedded compression pointers are absolute message offsets, so
// CNAME and SOA names resolve against full, never against the record's
// local RDATA slice.
func (c *codec) recordFromRaw(full []byte, rr rawRecord) (domain.ResourceRecord, error) {
	var data domain.RData

	switch rr.rtype {
	case domain.RRTypeA:
		if len(rr.rdata) < 4 {
			return domain.ResourceRecord{}, parseErrorf(0, "A record RDATA is %d bytes, need 4", len(rr.rdata))
		}
		data = domain.ARecord{Addr: netip.AddrFrom4([4]byte(rr.rdata[:4]))}

	case domain.RRTypeCNAME:
		target, err := c.readCompressedName(full, rr.rdata)
		if err != nil {
			return domain.ResourceRecord{}, err
		}
		data = domain.CNAMERecord{Target: target}

	case domain.RRTypeSOA:
		soa, err := c.readSOA(full, rr.rdata)
		if err != nil {
			return domain.ResourceRecord{}, err
		}
		data = soa

	case domain.RRTypeTXT:
		if !utf8.Valid(rr.rdata) {
			return domain.ResourceRecord{}, encodingErrorf("TXT record RDATA is not valid UTF-8")
		}
		data = domain.TXTRecord{Text: string(rr.rdata)}

	case domain.RRTypeAAAA:
		if len(rr.rdata) < 16 {
			return domain.ResourceRecord{}, parseErrorf(0, "AAAA record RDATA is %d bytes, need 16", len(rr.rdata))
		}
		data = domain.AAAARecord{Addr: netip.AddrFrom16([16]byte(rr.rdata[:16]))}

	default:
		raw := make([]byte, len(rr.rdata))
		copy(raw, rr.rdata)
		data = domain.RawRecord{Code: rr.rtype, Data: raw}
	}

	return domain.ResourceRecord{
		Name:  c.flattenName(rr.name),
		Data:  data,
		Class: rr.class,
		TTL:   rr.ttl,
	}, nil
}

// readCompressedName decodes a possibly compressed name from rdata,
// resolving pointers against the full message buffer, and flattens it.
func (c *codec) readCompressedName(full, rdata []byte) (string, error) {
	tokens, err := readName(newByteReader(rdata))
	if err != nil {
		return "", err
	}
	if err := resolveNames(full, tokens, map[uint16]struct{}{}); err != nil {
		return "", err
	}
	return c.flattenName(tokens), nil
}

// readSOA decodes an SOA payload: two consecutive compressed names (mname,
// rname) followed by five big-endian u32 fields in fixed order.
func (c *codec) readSOA(full, rdata []byte) (domain.SOARecord, error) {
	var soa domain.SOARecord

	r := newByteReader(rdata)
	mnames, err := readName(r)
	if err != nil {
		return soa, err
	}
	if err := resolveNames(full, mnames, map[uint16]struct{}{}); err != nil {
		return soa, err
	}
	soa.MName = c.flattenName(mnames)

	rnames, err := readName(r)
	if err != nil {
		return soa, err
	}
	if err := resolveNames(full, rnames, map[uint16]struct{}{}); err != nil {
		return soa, err
	}
	soa.RName = c.flattenName(rnames)

	for _, field := range []*uint32{&soa.Serial, &soa.Refresh, &soa.Retry, &soa.Expire, &soa.Minimum} {
		if *field, err = r.readUint32(); err != nil {
			return soa, err
		}
	}
	return soa, nil
}

// writeResourceRecord encodes one record entry. The RDATA is written into a
// scratch buffer first because its encoded length must precede it on the
// wire and is not known until encoding completes.
func writeResourceRecord(rr domain.ResourceRecord, buf *bytes.Buffer) (int, error) {
	n, err := writeName(rr.Name, buf)
	if err != nil {
		return 0, err
	}

	var scratch [4]byte
	binary.BigEndian.PutUint16(scratch[:2], uint16(rr.Data.Type()))
	buf.Write(scratch[:2])
	binary.BigEndian.PutUint16(scratch[:2], uint16(rr.Class))
	buf.Write(scratch[:2])
	binary.BigEndian.PutUint32(scratch[:], rr.TTL)
	buf.Write(scratch[:])
	n += 8

	var rdata bytes.Buffer
	rdlength, err := writeRData(rr.Data, &rdata)
	if err != nil {
		return 0, err
	}
	if rdlength > 0xFFFF {
		return 0, encodingErrorf("RDATA of %d bytes exceeds length field", rdlength)
	}
	binary.BigEndian.PutUint16(scratch[:2], uint16(rdlength))
	buf.Write(scratch[:2])
	buf.Write(rdata.Bytes())

	return n + 2 + rdlength, nil
}

// writeRData encodes one RDATA payload by exhaustive dispatch over the
// closed variant set. RawRecord doubles as the fallback representation for
// types without a dedicated case, so any other RData implementation is an
// encoding error.
func writeRData(data domain.RData, buf *bytes.Buffer) (int, error) {
	switch d := data.(type) {
	case domain.ARecord:
		if !d.Addr.Is4() && !d.Addr.Is4In6() {
			return 0, encodingErrorf("A record address %s is not IPv4", d.Addr)
		}
		a := d.Addr.As4()
		buf.Write(a[:])
		return 4, nil

	case domain.CNAMERecord:
		return writeName(d.Target, buf)

	case domain.SOARecord:
		n, err := writeName(d.MName, buf)
		if err != nil {
			return 0, err
		}
		rn, err := writeName(d.RName, buf)
		if err != nil {
			return 0, err
		}
		n += rn
		var scratch [4]byte
		for _, field := range []uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
			binary.BigEndian.PutUint32(scratch[:], field)
			buf.Write(scratch[:])
		}
		return n + 20, nil

	case domain.TXTRecord:
		buf.WriteString(d.Text)
		return len(d.Text), nil

	case domain.AAAARecord:
		a := d.Addr.As16()
		buf.Write(a[:])
		return 16, nil

	case domain.RawRecord:
		buf.Write(d.Data)
		return len(d.Data), nil

	default:
		return 0, encodingErrorf("no wire representation for RData %T", data)
	}
}
