package relay

import (
	"context"
	"net"

	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// UpstreamClient forwards a query message to an external resolver and
// returns its response.
type UpstreamClient interface {
	Exchange(ctx context.Context, query domain.Message) (domain.Message, error)
}

// Cache stores upstream response messages keyed by question.
type Cache interface {
	Get(key string) (domain.Message, bool)
	Set(key string, msg domain.Message)
}

// Blocklist answers whether a domain name is blocked.
type Blocklist interface {
	IsBlocked(name string) bool
}

// Handler processes one decoded DNS query and produces the response to
// send back. The transport handles all network protocol details; the
// handler only sees domain objects.
type Handler interface {
	HandleQuery(ctx context.Context, query domain.Message, clientAddr net.Addr) domain.Message
}

// Modifier mutates a message in flight. Request modifiers run before the
// query is answered, response modifiers run before the answer is returned
// to the client.
type Modifier func(msg *domain.Message)
