// Package msgcache caches upstream DNS response messages in memory with an
// LRU eviction strategy. Entries expire by the response's minimum record
// TTL, measured against an injected clock.
package msgcache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/dnsrelay/internal/dns/common/clock"
	"github.com/haukened/dnsrelay/internal/dns/domain"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

type entry struct {
	msg     domain.Message
	stored  time.Time
	expires time.Time
}

// msgCache is a TTL-aware LRU cache of DNS response messages.
type msgCache struct {
	lru   *lru.Cache[string, entry]
	clock clock.Clock
}

// New returns a message cache of the given size backed by an LRU store.
func New(size int, clk clock.Clock) (*msgCache, error) {
	cache, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &msgCache{lru: cache, clock: clk}, nil
}

// Set stores msg under key for the duration of its minimum record TTL.
// A message with no cacheable lifetime is not stored.
func (c *msgCache) Set(key string, msg domain.Message) {
	ttl := msg.MinTTL()
	if ttl == 0 {
		return
	}
	now := c.clock.Now()
	c.lru.Add(key, entry{
		msg:     msg,
		stored:  now,
		expires: now.Add(time.Duration(ttl) * time.Second),
	})
}

// Get returns the cached message for key if present and not expired, with
// record TTLs reduced by the time the entry spent in the cache. Expired
// entries are evicted on access.
func (c *msgCache) Get(key string) (domain.Message, bool) {
	e, found := c.lru.Get(key)
	if !found {
		return domain.Message{}, false
	}
	now := c.clock.Now()
	if !now.Before(e.expires) {
		c.lru.Remove(key)
		return domain.Message{}, false
	}

	elapsed := uint32(now.Sub(e.stored) / time.Second)
	if elapsed == 0 {
		return e.msg, true
	}
	msg := e.msg
	msg.Answers = ageRecords(msg.Answers, elapsed)
	msg.NameServers = ageRecords(msg.NameServers, elapsed)
	msg.Additional = ageRecords(msg.Additional, elapsed)
	return msg, true
}

// ageRecords returns a copy of records with elapsed seconds subtracted from
// each TTL. The stored entry keeps its original TTLs, so copying here keeps
// repeated hits from compounding the decrement.
func ageRecords(records []domain.ResourceRecord, elapsed uint32) []domain.ResourceRecord {
	if len(records) == 0 {
		return records
	}
	aged := make([]domain.ResourceRecord, len(records))
	copy(aged, records)
	for i := range aged {
		if aged[i].TTL > elapsed {
			aged[i].TTL -= elapsed
		} else {
			aged[i].TTL = 0
		}
	}
	return aged
}

// Delete removes the entry for the given key from the cache.
func (c *msgCache) Delete(key string) {
	c.lru.Remove(key)
}

// Len returns the number of entries currently stored, including any that
// have expired but not yet been evicted.
func (c *msgCache) Len() int {
	return c.lru.Len()
}

// Keys returns a slice of all current cache keys.
func (c *msgCache) Keys() []string {
	return c.lru.Keys()
}

var _ relay.Cache = (*msgCache)(nil)
