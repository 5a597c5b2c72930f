package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/gateways/wire"
	"github.com/haukened/dnsrelay/internal/dns/services/relay"
)

// UDPTransport serves plain DNS over UDP. Each datagram is decoded, handed
// to the handler, and answered on its own goroutine. Malformed datagrams
// are dropped without a reply.
type UDPTransport struct {
	addr   string
	codec  wire.MessageCodec
	logger log.Logger

	mu   sync.RWMutex
	conn net.PacketConn
}

// NewUDPTransport creates a UDP transport that binds addr once started.
func NewUDPTransport(addr string, codec wire.MessageCodec, logger log.Logger) *UDPTransport {
	return &UDPTransport{addr: addr, codec: codec, logger: logger}
}

// Start binds the socket and launches the receive loop. The socket closes
// when ctx is cancelled or Stop is called.
func (t *UDPTransport) Start(ctx context.Context, handler relay.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		return fmt.Errorf("udp transport on %s already started", t.addr)
	}

	conn, err := net.ListenPacket("udp", t.addr)
	if err != nil {
		return fmt.Errorf("listen udp %s: %w", t.addr, err)
	}
	t.conn = conn

	t.logger.Info(map[string]any{
		"address": conn.LocalAddr().String(),
	}, "udp listener up")

	go t.serve(ctx, conn, handler)
	go func() {
		<-ctx.Done()
		_ = t.Stop()
	}()

	return nil
}

// Stop closes the socket, which ends the receive loop. Safe to call more
// than once.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil

	t.logger.Info(map[string]any{"address": t.addr}, "udp listener closed")

	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Address returns the bound socket address once started, otherwise the
// configured address.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn == nil {
		return t.addr
	}
	return t.conn.LocalAddr().String()
}

// serve reads datagrams until the socket closes.
func (t *UDPTransport) serve(ctx context.Context, conn net.PacketConn, handler relay.Handler) {
	buf := make([]byte, wire.MaxUDPPayload)
	for {
		n, client, err := conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			t.logger.Warn(map[string]any{"error": err.Error()}, "udp read failed")
			continue
		}

		packet := append([]byte(nil), buf[:n]...)
		go t.answer(ctx, conn, packet, client, handler)
	}
}

// answer decodes one datagram, runs it through the handler, and writes the
// encoded response back to the client.
func (t *UDPTransport) answer(ctx context.Context, conn net.PacketConn, packet []byte, client net.Addr, handler relay.Handler) {
	query, err := t.codec.Decode(packet)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client": client.String(),
			"size":   len(packet),
			"error":  err.Error(),
		}, "dropping malformed datagram")
		return
	}

	response := handler.HandleQuery(ctx, query, client)

	var out bytes.Buffer
	size, err := t.codec.Encode(response, &out)
	if err != nil {
		t.logger.Error(map[string]any{
			"client": client.String(),
			"id":     response.Header.ID,
			"error":  err.Error(),
		}, "response encoding failed")
		return
	}

	if _, err := conn.WriteTo(out.Bytes(), client); err != nil {
		t.logger.Error(map[string]any{
			"client": client.String(),
			"id":     response.Header.ID,
			"error":  err.Error(),
		}, "response write failed")
		return
	}

	t.logger.Debug(map[string]any{
		"client":  client.String(),
		"id":      response.Header.ID,
		"rcode":   response.Header.RCode.String(),
		"answers": len(response.Answers),
		"size":    size,
	}, "answered query")
}

var _ ServerTransport = (*UDPTransport)(nil)
