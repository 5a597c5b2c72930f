package wire

import (
	"bytes"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// Decode parses a complete DNS message from data.
//
// The parse is two-pass: the header and all four sections are read
// structurally first, driven by the header's declared counts (an undersized
// buffer surfaces as a primitive bounds error), then compression pointers
// in every name list are resolved against the complete original buffer.
// The returned Message owns all of its data; it holds no references into
// data once Decode returns.
func (c *codec) Decode(data []byte) (domain.Message, error) {
	r := newByteReader(data)

	rh, err := readHeader(r)
	if err != nil {
		return domain.Message{}, err
	}

	var questions []rawQuestion
	for i := uint16(0); i < rh.qdCount; i++ {
		rq, err := readQuestion(r)
		if err != nil {
			return domain.Message{}, err
		}
		questions = append(questions, rq)
	}

	var answers, nameServers, additional []rawRecord
	for _, section := range []struct {
		count uint16
		into  *[]rawRecord
	}{
		{rh.anCount, &answers},
		{rh.nsCount, &nameServers},
		{rh.arCount, &additional},
	} {
		for i := uint16(0); i < section.count; i++ {
			rr, err := readResourceRecord(r)
			if err != nil {
				return domain.Message{}, err
			}
			*section.into = append(*section.into, rr)
		}
	}

	// Second pass: every name list gets its own visited-offset set, always
	// resolving against the complete original buffer.
	for i := range questions {
		if err := resolveNames(data, questions[i].qname, map[uint16]struct{}{}); err != nil {
			return domain.Message{}, err
		}
	}
	for _, section := range [][]rawRecord{answers, nameServers, additional} {
		for i := range section {
			if err := resolveNames(data, section[i].name, map[uint16]struct{}{}); err != nil {
				return domain.Message{}, err
			}
		}
	}

	msg := domain.Message{Header: rh.header}
	for _, rq := range questions {
		msg.Questions = append(msg.Questions, c.questionFromRaw(rq))
	}
	for _, section := range []struct {
		raw  []rawRecord
		into *[]domain.ResourceRecord
	}{
		{answers, &msg.Answers},
		{nameServers, &msg.NameServers},
		{additional, &msg.Additional},
	} {
		for _, rr := range section.raw {
			record, err := c.recordFromRaw(data, rr)
			if err != nil {
				return domain.Message{}, err
			}
			*section.into = append(*section.into, record)
		}
	}

	c.logger.Debug(map[string]any{
		"id":        msg.Header.ID,
		"questions": len(msg.Questions),
		"answers":   len(msg.Answers),
		"authority": len(msg.NameServers),
		"extra":     len(msg.Additional),
	}, "decoded DNS message")

	return msg, nil
}

// Encode appends the wire form of msg to buf and returns the number of
// bytes written. Section counts are derived from the live section lengths,
// and every name is written fully expanded. The total is compared against
// MaxUDPPayload purely for diagnostics; oversized messages are neither
// truncated nor flagged with TC here.
func (c *codec) Encode(msg domain.Message, buf *bytes.Buffer) (int, error) {
	total, err := writeHeader(&msg, buf)
	if err != nil {
		return 0, err
	}

	for _, q := range msg.Questions {
		n, err := writeQuestion(q, buf)
		if err != nil {
			return 0, err
		}
		total += n
	}
	for _, section := range [][]domain.ResourceRecord{msg.Answers, msg.NameServers, msg.Additional} {
		for _, rr := range section {
			n, err := writeResourceRecord(rr, buf)
			if err != nil {
				return 0, err
			}
			total += n
		}
	}

	if total > MaxUDPPayload {
		c.logger.Debug(map[string]any{
			"id":    msg.Header.ID,
			"size":  total,
			"limit": MaxUDPPayload,
		}, "encoded message exceeds UDP payload limit")
	}

	return total, nil
}
