package server

import (
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPResolver works out which address a request should be attributed
// to. X-Forwarded-For is honoured only when the direct peer is a trusted
// proxy, given either as a bare address or a CIDR prefix.
type clientIPResolver struct {
	trusted []netip.Prefix
}

func newClientIPResolver(trustedProxies []string) *clientIPResolver {
	res := &clientIPResolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			res.trusted = append(res.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			slog.Warn(LogMsgBadTrustedProxy, "value", raw, "error", err)
			continue
		}
		addr = addr.Unmap()
		res.trusted = append(res.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res
}

func (c *clientIPResolver) isTrusted(addr netip.Addr) bool {
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client address for r. Walking X-Forwarded-For from
// the right, the first hop that is not itself a trusted proxy wins.
func (c *clientIPResolver) Resolve(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil {
		return host
	}
	peer = peer.Unmap()
	if !c.isTrusted(peer) {
		return peer.String()
	}

	forwarded := r.Header.Values(HeaderForwardedFor)
	hops := strings.Split(strings.Join(forwarded, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		hop = hop.Unmap()
		if !c.isTrusted(hop) {
			return hop.String()
		}
	}
	return peer.String()
}
