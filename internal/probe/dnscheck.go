package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSClass summarises why a host does or does not resolve.
type DNSClass string

const (
	DNSResolves    DNSClass = "RESOLVES"
	DNSNoARecord   DNSClass = "NO_A_RECORD"
	DNSNXDomain    DNSClass = "NXDOMAIN"
	DNSUnavailable DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName DNSClass = "INVALID_NAME"
)

// DNSReport is an on-demand diagnosis for a target that is not Up.
type DNSReport struct {
	Host          string   `json:"host"`
	Class         DNSClass `json:"class"`
	IPs           []string `json:"ips,omitempty"`
	CNAME         string   `json:"cname,omitempty"`
	Nameservers   []string `json:"nameservers,omitempty"`
	ResolverError string   `json:"resolver_error,omitempty"`
}

type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

type DNSDiagnoser struct {
	Resolver Resolver
	Timeout  time.Duration
}

func NewDNSDiagnoser() *DNSDiagnoser {
	return &DNSDiagnoser{Resolver: &net.Resolver{}, Timeout: 3 * time.Second}
}

// Diagnose resolves the host part of target. target may be a URL or a bare host.
func (d *DNSDiagnoser) Diagnose(ctx context.Context, target string) DNSReport {
	rep := DNSReport{Host: HostOf(target)}
	if rep.Host == "" || strings.Contains(rep.Host, "://") {
		rep.Class = DNSInvalidName
		return rep
	}
	if ip := net.ParseIP(rep.Host); ip != nil {
		rep.Class = DNSResolves
		rep.IPs = []string{ip.String()}
		return rep
	}

	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	ips, err := d.Resolver.LookupIP(ctx, "ip", rep.Host)
	switch {
	case err == nil && len(ips) > 0:
		rep.Class = DNSResolves
		for _, ip := range ips {
			rep.IPs = append(rep.IPs, ip.String())
		}
	case err != nil:
		rep.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsNotFound {
				rep.Class = DNSNXDomain
			} else if de.IsTemporary || de.Timeout() {
				rep.Class = DNSUnavailable
			}
		}
	}

	if cname, err := d.Resolver.LookupCNAME(ctx, rep.Host); err == nil && !strings.EqualFold(cname, rep.Host+".") {
		rep.CNAME = strings.TrimSuffix(cname, ".")
	}

	if ns, err := d.Resolver.LookupNS(ctx, rep.Host); err == nil && len(ns) > 0 {
		for _, n := range ns {
			rep.Nameservers = append(rep.Nameservers, strings.TrimSuffix(n.Host, "."))
		}
		if rep.Class == DNSNXDomain {
			rep.Class = DNSNoARecord
		}
	}

	if rep.Class == "" {
		switch {
		case len(rep.Nameservers) > 0:
			rep.Class = DNSNoARecord
		case rep.ResolverError != "":
			rep.Class = DNSUnavailable
		default:
			rep.Class = DNSNXDomain
		}
	}
	return rep
}

// HostOf pulls the hostname from a URL string; anything unparsable is returned as is.
func HostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
