// Package transport provides the network-facing side of the relay. It
// converts between wire format and domain messages so the service layer
// only ever sees domain objects.
package transport

import (
	"context"
	"fmt"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/gateways/wire"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

// ServerTransport is a DNS server endpoint. Different protocols (UDP,
// DoH, DoT) can implement this interface while presenting the same
// handler contract to the service layer.
type ServerTransport interface {
	// Start begins listening and dispatching requests to handler.
	Start(ctx context.Context, handler relay.Handler) error

	// Stop gracefully shuts down the transport.
	Stop() error

	// Address returns the network address the transport is bound to.
	Address() string
}

// Type identifies a transport protocol.
type Type string

const (
	// TypeUDP is standard DNS over UDP (RFC 1035).
	TypeUDP Type = "udp"

	// TypeDoH is DNS over HTTPS (RFC 8484), not yet implemented.
	TypeDoH Type = "doh"

	// TypeDoT is DNS over TLS (RFC 7858), not yet implemented.
	TypeDoT Type = "dot"
)

// New creates a transport of the given type.
func New(t Type, addr string, codec wire.MessageCodec, logger log.Logger) (ServerTransport, error) {
	switch t {
	case TypeUDP:
		return NewUDPTransport(addr, codec, logger), nil
	case TypeDoH, TypeDoT:
		return nil, fmt.Errorf("transport %q not yet implemented", t)
	default:
		return nil, fmt.Errorf("unsupported transport type: %q", t)
	}
}
