package domain

// MessageBuilder assembles a Message programmatically, for callers that
// construct queries or synthesize responses rather than decode them off the
// wire. Unset fields keep their zero defaults: OpCodeQuery, RCodeNoError,
// and empty sections.
type MessageBuilder struct {
	msg Message
}

// NewMessageBuilder returns a MessageBuilder with default values for all
// fields.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{}
}

// Build produces the assembled Message.
func (b *MessageBuilder) Build() Message {
	return b.msg
}

// ID sets the 16 bit message identifier.
func (b *MessageBuilder) ID(id uint16) *MessageBuilder {
	b.msg.Header.ID = id
	return b
}

// QR marks the message as a response (true) or query (false).
func (b *MessageBuilder) QR(qr bool) *MessageBuilder {
	b.msg.Header.QR = qr
	return b
}

// OpCode sets the kind of query. The default is OpCodeQuery.
func (b *MessageBuilder) OpCode(o OpCode) *MessageBuilder {
	b.msg.Header.OpCode = o
	return b
}

// AA sets the authoritative answer bit.
func (b *MessageBuilder) AA(aa bool) *MessageBuilder {
	b.msg.Header.AA = aa
	return b
}

// TC sets the truncation bit.
func (b *MessageBuilder) TC(tc bool) *MessageBuilder {
	b.msg.Header.TC = tc
	return b
}

// RD sets the recursion desired bit.
func (b *MessageBuilder) RD(rd bool) *MessageBuilder {
	b.msg.Header.RD = rd
	return b
}

// RA sets the recursion available bit.
func (b *MessageBuilder) RA(ra bool) *MessageBuilder {
	b.msg.Header.RA = ra
	return b
}

// AD sets the authentic data bit.
func (b *MessageBuilder) AD(ad bool) *MessageBuilder {
	b.msg.Header.AD = ad
	return b
}

// CD sets the checking disabled bit.
func (b *MessageBuilder) CD(cd bool) *MessageBuilder {
	b.msg.Header.CD = cd
	return b
}

// RCode sets the response code. The default is RCodeNoError.
func (b *MessageBuilder) RCode(r RCode) *MessageBuilder {
	b.msg.Header.RCode = r
	return b
}

// Question appends a Question to the question section.
func (b *MessageBuilder) Question(q Question) *MessageBuilder {
	b.msg.Questions = append(b.msg.Questions, q)
	return b
}

// Answer appends a ResourceRecord to the answer section.
func (b *MessageBuilder) Answer(rr ResourceRecord) *MessageBuilder {
	b.msg.Answers = append(b.msg.Answers, rr)
	return b
}

// NameServer appends a ResourceRecord to the authority section.
func (b *MessageBuilder) NameServer(rr ResourceRecord) *MessageBuilder {
	b.msg.NameServers = append(b.msg.NameServers, rr)
	return b
}

// Additional appends a ResourceRecord to the additional section.
func (b *MessageBuilder) Additional(rr ResourceRecord) *MessageBuilder {
	b.msg.Additional = append(b.msg.Additional, rr)
	return b
}

// QuestionBuilder assembles a Question. The defaults are RRTypeA and
// RRClassIN.
type QuestionBuilder struct {
	q Question
}

// NewQuestionBuilder returns a QuestionBuilder with default values.
func NewQuestionBuilder() *QuestionBuilder {
	return &QuestionBuilder{
		q: Question{QType: RRTypeA, QClass: RRClassIN},
	}
}

// Build produces the assembled Question.
func (b *QuestionBuilder) Build() Question {
	return b.q
}

// Name sets the domain name for the Question. Each label must be 63 bytes
// or less; the limit is enforced by the wire codec at encode time.
func (b *QuestionBuilder) Name(name string) *QuestionBuilder {
	b.q.QName = name
	return b
}

// Type sets the query type. The default is RRTypeA.
func (b *QuestionBuilder) Type(t RRType) *QuestionBuilder {
	b.q.QType = t
	return b
}

// Class sets the query class. The default is RRClassIN.
func (b *QuestionBuilder) Class(c RRClass) *QuestionBuilder {
	b.q.QClass = c
	return b
}

// ResourceRecordBuilder assembles a ResourceRecord. A record always needs a
// name and an RData payload; class defaults to RRClassIN and TTL to zero.
type ResourceRecordBuilder struct {
	rr ResourceRecord
}

// NewResourceRecordBuilder returns a ResourceRecordBuilder for the given
// name and payload.
func NewResourceRecordBuilder(name string, data RData) *ResourceRecordBuilder {
	return &ResourceRecordBuilder{
		rr: ResourceRecord{Name: name, Data: data, Class: RRClassIN},
	}
}

// Build produces the assembled ResourceRecord.
func (b *ResourceRecordBuilder) Build() ResourceRecord {
	return b.rr
}

// Class sets the record class. The default is RRClassIN.
func (b *ResourceRecordBuilder) Class(c RRClass) *ResourceRecordBuilder {
	b.rr.Class = c
	return b
}

// TTL sets the record TTL in seconds. The default is zero.
func (b *ResourceRecordBuilder) TTL(ttl uint32) *ResourceRecordBuilder {
	b.rr.TTL = ttl
	return b
}
