// Package blocklist answers whether a domain name is blocked. Names are
// indexed in a bbolt database with a Bloom prefilter in front, so the
// common case (a name that is not blocked) never touches disk.
//
// Two rule kinds are supported: exact names and suffix rules (apex
// inclusive), the latter written as "*.example.com" or ".example.com" in
// list files. Suffix anchors are stored byte-reversed so the Bloom keys
// and store keys stay aligned.
package blocklist

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/common/utils"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

var (
	bucketExact  = []byte("exact")
	bucketSuffix = []byte("suffix")
)

// falsePositiveRate sizes the Bloom filter on rebuild.
const falsePositiveRate = 0.001

// Store is a bbolt-backed blocklist with a Bloom prefilter.
type Store struct {
	db     *bbolt.DB
	logger log.Logger

	mu    sync.RWMutex
	bloom *bloom.BloomFilter
}

// Open opens (or creates) the blocklist database at path and primes the
// Bloom filter from the existing buckets.
func Open(path string, logger log.Logger) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open blocklist db: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketExact, bucketSuffix} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, logger: logger}
	if err := s.rebuildBloom(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// LoadFile replaces the store contents with the rules parsed from the
// list file at path and returns the number of rules loaded.
func (s *Store) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open blocklist file: %w", err)
	}
	defer f.Close()

	rules, err := parseRules(f)
	if err != nil {
		return 0, fmt.Errorf("parse blocklist file: %w", err)
	}
	if err := s.replaceAll(rules); err != nil {
		return 0, err
	}

	s.logger.Info(map[string]any{
		"path":  path,
		"rules": len(rules),
	}, "blocklist loaded")
	return len(rules), nil
}

// IsBlocked reports whether name matches an exact rule or falls under a
// suffix rule. Internal errors prefer allow.
func (s *Store) IsBlocked(name string) bool {
	cn := utils.CanonicalDNSName(name)
	if cn == "" {
		return false
	}

	s.mu.RLock()
	filter := s.bloom
	s.mu.RUnlock()

	if filter.Test([]byte(cn)) && s.existsExact(cn) {
		return true
	}

	// Suffix anchors, most-specific first: the name itself, then each
	// parent domain.
	for anchor := cn; anchor != ""; {
		rev := reverseString(anchor)
		if filter.Test([]byte(rev)) && s.existsSuffix(rev) {
			return true
		}
		i := strings.IndexByte(anchor, '.')
		if i < 0 {
			break
		}
		anchor = anchor[i+1:]
	}
	return false
}

// Len returns the number of rules currently stored.
func (s *Store) Len() int {
	var n int
	_ = s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketExact).Stats().KeyN + tx.Bucket(bucketSuffix).Stats().KeyN
		return nil
	})
	return n
}

// replaceAll rewrites both buckets from rules and swaps in a fresh Bloom
// filter sized for the rule count.
func (s *Store) replaceAll(rules []rule) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketExact, bucketSuffix} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		exact := tx.Bucket(bucketExact)
		suffix := tx.Bucket(bucketSuffix)
		for _, r := range rules {
			switch r.kind {
			case ruleExact:
				if err := exact.Put([]byte(r.name), []byte{1}); err != nil {
					return err
				}
			case ruleSuffix:
				if err := suffix.Put([]byte(reverseString(r.name)), []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rewrite blocklist db: %w", err)
	}
	return s.rebuildBloom()
}

// rebuildBloom replaces the prefilter with one built from the current
// bucket contents.
func (s *Store) rebuildBloom() error {
	n := s.Len()
	if n == 0 {
		n = 1
	}
	filter := bloom.NewWithEstimates(uint(n), falsePositiveRate)

	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{bucketExact, bucketSuffix} {
			if err := tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
				filter.Add(k)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("rebuild bloom filter: %w", err)
	}

	s.mu.Lock()
	s.bloom = filter
	s.mu.Unlock()
	return nil
}

func (s *Store) existsExact(name string) bool {
	var present bool
	if err := s.db.View(func(tx *bbolt.Tx) error {
		present = tx.Bucket(bucketExact).Get([]byte(name)) != nil
		return nil
	}); err != nil {
		s.logger.Warn(map[string]any{"name": name, "error": err.Error()}, "blocklist exact lookup failed")
		return false
	}
	return present
}

func (s *Store) existsSuffix(reversed string) bool {
	var present bool
	if err := s.db.View(func(tx *bbolt.Tx) error {
		present = tx.Bucket(bucketSuffix).Get([]byte(reversed)) != nil
		return nil
	}); err != nil {
		s.logger.Warn(map[string]any{"error": err.Error()}, "blocklist suffix lookup failed")
		return false
	}
	return present
}

// reverseString reverses the string bytes. Suffix anchors share this
// reversal between Bloom keys and store keys.
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

var _ relay.Blocklist = (*Store)(nil)
