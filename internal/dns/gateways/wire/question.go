package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// rawQuestion is one structurally parsed question whose name may still
// contain unresolved compression pointers.
type rawQuestion struct {
	qname  []nameToken
	qtype  domain.RRType
	qclass domain.RRClass
}

// readQuestion parses one question entry: name, type, class.
func readQuestion(r *byteReader) (rawQuestion, error) {
	var rq rawQuestion

	qname, err := readName(r)
	if err != nil {
		return rq, err
	}
	rq.qname = qname

	qtype, err := r.readUint16()
	if err != nil {
		return rq, err
	}
	rq.qtype = domain.RRType(qtype)

	qclass, err := r.readUint16()
	if err != nil {
		return rq, err
	}
	rq.qclass = domain.RRClass(qclass)

	return rq, nil
}

// questionFromRaw flattens a resolved rawQuestion into a domain Question.
func (c *codec) questionFromRaw(rq rawQuestion) domain.Question {
	return domain.Question{
		QName:  c.flattenName(rq.qname),
		QType:  rq.qtype,
		QClass: rq.qclass,
	}
}

// writeQuestion encodes one question entry and returns its byte count.
func writeQuestion(q domain.Question, buf *bytes.Buffer) (int, error) {
	n, err := writeName(q.QName, buf)
	if err != nil {
		return 0, err
	}

	var scratch [2]byte
	binary.BigEndian.PutUint16(scratch[:], uint16(q.QType))
	buf.Write(scratch[:])
	binary.BigEndian.PutUint16(scratch[:], uint16(q.QClass))
	buf.Write(scratch[:])

	return n + 4, nil
}
