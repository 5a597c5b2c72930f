package domain

import "fmt"

// ResourceRecord is one entry of the answer, authority or additional
// section. The three sections share this format.
//
// The record's wire type code lives in Data: it is always derived from the
// payload variant, never stored separately, so type and payload cannot
// disagree.
type ResourceRecord struct {
	// Name is the domain name this record pertains to, in dotted form.
	Name string

	// Data is the typed RDATA payload. It also determines the record's type
	// code on the wire.
	Data RData

	// Class is the class of the data in the Data field.
	Class RRClass

	// TTL specifies the time interval in seconds that the record may be
	// cached before it should be discarded. Zero means the record should
	// only be used for the transaction in progress.
	TTL uint32
}

func (rr ResourceRecord) String() string {
	return fmt.Sprintf("%s => %s", rr.Name, rr.Data)
}

// CacheKey returns a cache key string derived from the record's name, type,
// and class.
func (rr ResourceRecord) CacheKey() string {
	return GenerateCacheKey(rr.Name, rr.Data.Type(), rr.Class)
}
