// Package relay implements the core DNS forwarding service: queries come
// in from a server transport, pass through the optional request mutators
// and the blocklist, and are answered from the message cache or an
// upstream resolver.
package relay

import (
	"context"
	"net"

	"github.com/haukened/dnsrelay/internal/dns/common/log"
	"github.com/haukened/dnsrelay/internal/dns/domain"
)

// Relay wires the relay collaborators together and implements Handler.
type Relay struct {
	blocklist   Blocklist
	cache       Cache
	logger      log.Logger
	upstream    UpstreamClient
	modRequest  []Modifier
	modResponse []Modifier
}

// Options defines the collaborators for a Relay. Upstream and Logger are
// required; Blocklist, Cache and the modifier lists are optional.
type Options struct {
	Blocklist   Blocklist
	Cache       Cache
	Logger      log.Logger
	Upstream    UpstreamClient
	ModRequest  []Modifier
	ModResponse []Modifier
}

// New constructs a Relay from its collaborators.
func New(opts Options) *Relay {
	return &Relay{
		blocklist:   opts.Blocklist,
		cache:       opts.Cache,
		logger:      opts.Logger,
		upstream:    opts.Upstream,
		modRequest:  opts.ModRequest,
		modResponse: opts.ModResponse,
	}
}

// HandleQuery processes one decoded DNS query end to end and returns the
// response message to send back to the client.
func (r *Relay) HandleQuery(ctx context.Context, query domain.Message, clientAddr net.Addr) domain.Message {
	for _, mod := range r.modRequest {
		mod(&query)
	}

	if len(query.Questions) == 0 {
		r.logger.Warn(map[string]any{
			"id":     query.Header.ID,
			"client": addrString(clientAddr),
		}, "query carries no question")
		return r.errorResponse(query, domain.RCodeFormatError)
	}
	question := query.Questions[0]

	if r.blocklist != nil && r.blocklist.IsBlocked(question.QName) {
		r.logger.Info(map[string]any{
			"id":     query.Header.ID,
			"name":   question.QName,
			"client": addrString(clientAddr),
		}, "query refused by blocklist")
		return r.errorResponse(query, domain.RCodeRefused)
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(question.CacheKey()); ok {
			r.logger.Debug(map[string]any{
				"id":   query.Header.ID,
				"name": question.QName,
			}, "answered from cache")
			cached.Header.ID = query.Header.ID
			return r.finishResponse(cached)
		}
	}

	response, err := r.upstream.Exchange(ctx, query)
	if err != nil {
		r.logger.Error(map[string]any{
			"id":    query.Header.ID,
			"name":  question.QName,
			"error": err.Error(),
		}, "upstream exchange failed")
		return r.errorResponse(query, domain.RCodeServerFailure)
	}

	if r.cache != nil && response.Header.RCode == domain.RCodeNoError && response.MinTTL() > 0 {
		r.cache.Set(question.CacheKey(), response)
	}

	return r.finishResponse(response)
}

// finishResponse runs the response mutators before the message goes back
// to the transport.
func (r *Relay) finishResponse(response domain.Message) domain.Message {
	for _, mod := range r.modResponse {
		mod(&response)
	}
	return response
}

// errorResponse synthesizes a response for the query with the given rcode
// and no answer sections. The question is echoed back when present.
func (r *Relay) errorResponse(query domain.Message, rcode domain.RCode) domain.Message {
	b := domain.NewMessageBuilder().
		ID(query.Header.ID).
		QR(true).
		OpCode(query.Header.OpCode).
		RD(query.Header.RD).
		RCode(rcode)
	for _, q := range query.Questions {
		b.Question(q)
	}
	return r.finishResponse(b.Build())
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

var _ Handler = (*Relay)(nil)
