// Package upstream forwards DNS queries to external resolvers over UDP.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/haukened/dnsrelay/internal/dns/domain"
	"github.com/haukened/dnsrelay/internal/dns/gateways/wire"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

var (
	ErrNoServers     = errors.New("no upstream DNS servers provided")
	ErrCodecRequired = errors.New("DNS codec is required")
)

// Client implements upstream DNS resolution by forwarding queries to
// external DNS servers over UDP. It handles the low-level networking
// concerns while the relay service keeps the business logic.
type Client struct {
	servers  []string
	timeout  time.Duration
	codec    wire.MessageCodec
	parallel bool
	dial     DialFunc
}

// DialFunc establishes a network connection. It matches the signature of
// net.Dialer.DialContext so tests can substitute an in-memory pipe.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Options defines configuration parameters for the upstream client.
type Options struct {
	// required parameters
	Servers []string
	Timeout time.Duration
	Codec   wire.MessageCodec

	// Parallel races all servers instead of trying them in order.
	Parallel bool

	// Dial is injectable for testing; defaults to net.Dialer.
	Dial DialFunc
}

// New creates an upstream client. The server list and codec are required;
// the timeout defaults to 5 seconds.
func New(opts Options) (*Client, error) {
	if len(opts.Servers) == 0 {
		return nil, ErrNoServers
	}
	if opts.Codec == nil {
		return nil, ErrCodecRequired
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Dial == nil {
		opts.Dial = (&net.Dialer{}).DialContext
	}
	return &Client{
		servers:  opts.Servers,
		timeout:  opts.Timeout,
		codec:    opts.Codec,
		parallel: opts.Parallel,
		dial:     opts.Dial,
	}, nil
}

// Exchange forwards query to the configured servers and returns the first
// successful response. The context deadline bounds the whole exchange; if
// none is set the client's default timeout applies.
func (c *Client) Exchange(ctx context.Context, query domain.Message) (domain.Message, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.parallel {
		return c.exchangeParallel(ctx, query)
	}
	return c.exchangeSerial(ctx, query)
}

// exchangeSerial tries each server in order until one responds.
func (c *Client) exchangeSerial(ctx context.Context, query domain.Message) (domain.Message, error) {
	var lastErr error
	for _, server := range c.servers {
		resp, err := c.queryServer(ctx, server, query)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return domain.Message{}, fmt.Errorf("all %d upstream servers failed: %w", len(c.servers), lastErr)
}

// exchangeParallel races all servers and returns the first success.
func (c *Client) exchangeParallel(ctx context.Context, query domain.Message) (domain.Message, error) {
	responseChan := make(chan domain.Message, 1)
	errorChan := make(chan error, len(c.servers))

	for _, server := range c.servers {
		go func(srv string) {
			resp, err := c.queryServer(ctx, srv, query)
			if err != nil {
				errorChan <- fmt.Errorf("server %s: %w", srv, err)
				return
			}
			select {
			case responseChan <- resp:
			default:
			}
		}(server)
	}

	var errs []error
	for i := 0; i < len(c.servers); i++ {
		select {
		case resp := <-responseChan:
			return resp, nil
		case err := <-errorChan:
			errs = append(errs, err)
		case <-ctx.Done():
			return domain.Message{}, ctx.Err()
		}
	}
	return domain.Message{}, fmt.Errorf("all %d upstream servers failed: %w", len(c.servers), errors.Join(errs...))
}

// queryServer performs one query against one server with context
// cancellation support.
func (c *Client) queryServer(ctx context.Context, server string, query domain.Message) (domain.Message, error) {
	conn, err := c.dial(ctx, "udp", server)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	var buf bytes.Buffer
	if _, err := c.codec.Encode(query, &buf); err != nil {
		return domain.Message{}, fmt.Errorf("encode failed: %w", err)
	}

	type result struct {
		response domain.Message
		err      error
	}
	resultChan := make(chan result, 1)

	go func() {
		if _, err := conn.Write(buf.Bytes()); err != nil {
			resultChan <- result{err: fmt.Errorf("write failed: %w", err)}
			return
		}

		reply := make([]byte, wire.MaxUDPPayload)
		n, err := conn.Read(reply)
		if err != nil {
			resultChan <- result{err: fmt.Errorf("read failed: %w", err)}
			return
		}

		response, err := c.codec.Decode(reply[:n])
		if err != nil {
			resultChan <- result{err: fmt.Errorf("decode failed: %w", err)}
			return
		}
		if response.Header.ID != query.Header.ID {
			resultChan <- result{err: fmt.Errorf("response ID %d does not match query ID %d",
				response.Header.ID, query.Header.ID)}
			return
		}
		resultChan <- result{response: response}
	}()

	select {
	case res := <-resultChan:
		return res.response, res.err
	case <-ctx.Done():
		return domain.Message{}, ctx.Err()
	}
}

var _ relay.UpstreamClient = (*Client)(nil)
