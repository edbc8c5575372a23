package domain

import (
	"context"
	"net"

	"github.com/bakwc/htf/network/ip"
	ipv4 "github.com/bakwc/htf/network/ip/v4"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// NetLookuper resolves IPv4 addresses through the system resolver.
// Internationalized names are converted to their ASCII form first.
type NetLookuper struct {
	Resolver *net.Resolver // nil means net.DefaultResolver
}

var _ Lookuper = (*NetLookuper)(nil)

func (n *NetLookuper) LookupIP(ctx context.Context, domain string) ([]ip.Addr, error) {
	name, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %q to ascii", domain)
	}

	resolver := n.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	found, err := resolver.LookupIP(ctx, "ip4", name)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, errors.Wrap(ErrDomainNotFound, dnsErr.Error())
		}
		return nil, errors.Wrap(err, "resolving domain")
	}

	addrs := make([]ip.Addr, 0, len(found))
	for _, netIP := range found {
		v4 := netIP.To4()
		if v4 == nil {
			continue
		}
		addr, err := ipv4.AddrFromSlice(v4)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}

	if len(addrs) == 0 {
		return nil, errors.Wrapf(ErrDomainNotFound, "no ipv4 address for %q", domain)
	}

	return addrs, nil
}
