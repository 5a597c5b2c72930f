package domain

import (
	"fmt"
	"strings"
)

// Message is one decoded or to-be-encoded DNS message: a header and the four
// record sections. Section counts never live here; the wire codec writes
// them from the live section lengths, so a Message cannot claim counts that
// disagree with its contents.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	NameServers []ResourceRecord
	Additional  []ResourceRecord
}

// MinTTL returns the smallest TTL across all records in the message, or zero
// when the message carries no records. Used by caches to bound how long the
// whole response stays valid.
func (m Message) MinTTL() uint32 {
	var min uint32
	var found bool
	for _, section := range [][]ResourceRecord{m.Answers, m.NameServers, m.Additional} {
		for _, rr := range section {
			if !found || rr.TTL < min {
				min = rr.TTL
				found = true
			}
		}
	}
	return min
}

func (m Message) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Message(id:%d) - Query [", m.Header.ID)
	for i, q := range m.Questions {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s(%s)", q.QName, q.QType)
	}
	sb.WriteString("]")
	if m.Header.QR {
		sb.WriteString(" - Response [")
		for i, a := range m.Answers {
			if i != 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s", a)
		}
		sb.WriteString("]")
	}
	return sb.String()
}
