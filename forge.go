//
//   date  : 2025-10-02
//   author: forgenet
//

package forge

import (
	"fmt"
	"net"

	"github.com/op/go-logging"

	"github.com/forgenet/forge/tcpip"
)

var logger = logging.MustGetLogger("forge")

// receiveBufferSize bounds one received packet, the IPv4 maximum.
const receiveBufferSize = 65535

// Forge wires configuration, name resolution and a packet transport behind
// the two operations the tool exposes: ping and probe.
type Forge struct {
	cfg      *ForgeConfig
	resolver *Resolver
	source   net.IP

	transport Transport
}

func FromConfig(cfg *ForgeConfig) (*Forge, error) {
	source := net.ParseIP(cfg.General.Source)
	if source = source.To4(); source == nil {
		return nil, fmt.Errorf("[forge] invalid source address: %q", cfg.General.Source)
	}

	return &Forge{
		cfg:      cfg,
		resolver: NewResolver(cfg.Dns),
		source:   source,
	}, nil
}

// openTransport picks the configured injection path. Raw sockets receive
// only one protocol, so the caller names the one it expects replies on.
func (f *Forge) openTransport(recvProtocol tcpip.IPProtocol) (Transport, error) {
	switch f.cfg.Transport.Mode {
	case "", TransportRaw:
		return NewRawSocket(recvProtocol)
	case TransportTun:
		return NewTunTransport(f.cfg.Transport.Network, f.cfg.Transport.Mtu)
	}
	return nil, fmt.Errorf("[forge] unknown transport mode: %q", f.cfg.Transport.Mode)
}

// Ping resolves target and runs one configured echo-request train against it.
func (f *Forge) Ping(target string) (*PingStats, error) {
	dst, err := f.resolver.ResolveIPv4(target)
	if err != nil {
		return nil, err
	}
	logger.Infof("[forge] ping %s (%s)", target, dst)

	transport, err := f.openTransport(tcpip.ICMP)
	if err != nil {
		return nil, err
	}
	f.transport = transport
	defer f.Close()

	pinger, err := NewPinger(transport, f.source, dst, f.cfg.Ping)
	if err != nil {
		return nil, err
	}

	stats := pinger.Run()
	logger.Infof("[forge] %s: %d sent, %d received, %.0f%% loss",
		target, stats.Sent, stats.Received, stats.Loss()*100)
	return stats, nil
}

// Probe resolves target and SYN-probes every configured port.
func (f *Forge) Probe(target string) error {
	dst, err := f.resolver.ResolveIPv4(target)
	if err != nil {
		return err
	}

	if len(f.cfg.Probe.Ports) == 0 {
		return fmt.Errorf("[forge] no probe ports configured")
	}
	logger.Infof("[forge] probe %s (%s), %d ports", target, dst, len(f.cfg.Probe.Ports))

	transport, err := f.openTransport(tcpip.TCP)
	if err != nil {
		return err
	}
	f.transport = transport
	defer f.Close()

	prober := NewProber(transport, f.source, dst, f.cfg.Probe)
	for _, port := range f.cfg.Probe.Ports {
		result, err := prober.Probe(uint16(port))
		if err != nil {
			logger.Errorf("[forge] probe %s:%d failed: %v", target, port, err)
			continue
		}
		logger.Infof("[forge] %s:%d %s", target, port, result)
	}
	return nil
}

// Close releases the open transport, if any. It is registered as signal
// cleanup by the command so a raw socket never outlives an interrupt.
func (f *Forge) Close() {
	if f.transport == nil {
		return
	}
	if err := f.transport.Close(); err != nil {
		logger.Warningf("[forge] close transport: %v", err)
	}
	f.transport = nil
}
