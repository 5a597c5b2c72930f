package blocklist

import "github.com/haukened/dnsrelay/internal/dns/services/relay"

// Nop is a Blocklist that blocks nothing. Used when no blocklist file is
// configured.
type Nop struct{}

// IsBlocked always returns false.
func (Nop) IsBlocked(string) bool { return false }

var _ relay.Blocklist = Nop{}
