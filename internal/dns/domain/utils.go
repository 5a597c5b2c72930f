package domain

import (
	"github.com/haukened/dnsrelay/internal/dns/common/utils"
)

// GenerateCacheKey returns a consistent cache key derived from a DNS name,
// type, and class. The apex-aware format groups entries by zone root.
// Format: "apex|name|type|class" (e.g. "example.com|www.example.com|A|IN").
// Pipe separators avoid conflicts with colons in IPv6 addresses and URIs.
func GenerateCacheKey(name string, t RRType, c RRClass) string {
	name = utils.CanonicalDNSName(name)
	apex := utils.GetApexDomain(name)
	return apex + "|" + name + "|" + t.String() + "|" + c.String()
}
