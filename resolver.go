//
//   date  : 2025-10-03
//   author: forgenet
//

package forge

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
)

const dnsDefaultPort = "53"

var ErrResolve = errors.New("forge: resolve failed")

// Resolver turns ping and probe targets into IPv4 addresses using the
// configured nameservers.
type Resolver struct {
	client      *dns.Client
	nameservers []string
}

func NewResolver(cfg DnsConfig) *Resolver {
	nameservers := make([]string, 0, len(cfg.Server))
	for _, server := range cfg.Server {
		if !strings.Contains(server, ":") {
			server = net.JoinHostPort(server, dnsDefaultPort)
		}
		nameservers = append(nameservers, server)
	}

	return &Resolver{
		client: &dns.Client{
			Net:     "udp",
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		nameservers: nameservers,
	}
}

// ResolveIPv4 resolves host to an IPv4 address. Literal addresses
// short-circuit without touching the network.
func (r *Resolver) ResolveIPv4(host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, fmt.Errorf("%w: %s is not an IPv4 address", ErrResolve, host)
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeA)

	msg, err := r.resolve(m)
	if err != nil {
		return nil, err
	}

	for _, item := range msg.Answer {
		if a, ok := item.(*dns.A); ok {
			return a.A.To4(), nil
		}
	}
	return nil, fmt.Errorf("%w: no A record for %s", ErrResolve, host)
}

// resolve queries the nameservers one by one with a short stagger and
// takes whichever answers first.
func (r *Resolver) resolve(m *dns.Msg) (*dns.Msg, error) {
	var wg sync.WaitGroup
	msgCh := make(chan *dns.Msg, 1)

	qname := m.Question[0].Name

	Q := func(ns string) {
		defer wg.Done()

		resp, rtt, err := r.client.Exchange(m, ns)
		if err != nil {
			logger.Debugf("[resolver] query %s on %s failed: %v", qname, ns, err)
			return
		}

		if resp.Rcode != dns.RcodeSuccess {
			logger.Debugf("[resolver] query %s on %s failed: code %d", qname, ns, resp.Rcode)
			return
		}

		logger.Debugf("[resolver] query %s on %s, rtt: %v", qname, ns, rtt)

		select {
		case msgCh <- resp:
		default:
		}
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for _, ns := range r.nameservers {
		wg.Add(1)
		go Q(ns)

		select {
		case msg := <-msgCh:
			return msg, nil
		case <-ticker.C:
			continue
		}
	}

	wg.Wait()

	select {
	case msg := <-msgCh:
		return msg, nil
	default:
		logger.Errorf("[resolver] query %s timeout", qname)
		return nil, ErrResolve
	}
}
