//
//   date  : 2025-10-05
//   author: forgenet
//

package forge

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/forgenet/forge/tcpip"
)

// ProbeResult classifies the answer to one SYN probe.
type ProbeResult int

const (
	ProbeFiltered ProbeResult = iota // no answer before the timeout
	ProbeOpen                        // SYN/ACK
	ProbeClosed                      // RST
)

func (r ProbeResult) String() string {
	switch r {
	case ProbeOpen:
		return "open"
	case ProbeClosed:
		return "closed"
	}
	return "filtered"
}

// Prober sends single SYN segments and classifies what comes back. Each
// probe builds a fresh TCPHeader so sequence numbers never repeat across
// ports.
type Prober struct {
	transport Transport
	src       net.IP
	dst       net.IP
	srcPort   uint16
	timeout   time.Duration
}

func NewProber(transport Transport, src, dst net.IP, cfg ProbeConfig) *Prober {
	srcPort := cfg.SourcePort
	if srcPort == 0 {
		srcPort = uint16(40000 + rand.Intn(20000))
	}

	return &Prober{
		transport: transport,
		src:       src,
		dst:       dst,
		srcPort:   srcPort,
		timeout:   time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}
}

func (p *Prober) Probe(port uint16) (ProbeResult, error) {
	h := tcpip.NewTCPHeader(nil)
	h.SYN = true
	h.SetSourcePort(p.srcPort)
	h.SetDestinationPort(port)
	if err := h.SetSourceIP(p.src.String()); err != nil {
		return ProbeFiltered, err
	}
	if err := h.SetDestinationIP(p.dst.String()); err != nil {
		return ProbeFiltered, err
	}

	pkt, err := h.Marshal()
	if err != nil {
		return ProbeFiltered, err
	}

	start := time.Now()
	if _, err := p.transport.Send(pkt, p.dst); err != nil {
		return ProbeFiltered, fmt.Errorf("[probe] send: %w", err)
	}

	buf := make([]byte, receiveBufferSize)
	deadline := start.Add(p.timeout)
	for {
		remain := time.Until(deadline)
		if remain <= 0 {
			return ProbeFiltered, nil
		}

		if dt, ok := p.transport.(receiveDeadliner); ok {
			if err := dt.SetReceiveTimeout(remain); err != nil {
				logger.Warningf("[probe] set receive timeout: %v", err)
			}
		}

		n, err := p.transport.Receive(buf)
		if err != nil {
			logger.Debugf("[probe] receive: %v", err)
			return ProbeFiltered, nil
		}

		if result, ok := p.classify(buf[:n], h.Seq, port); ok {
			return result, nil
		}
	}
}

// classify decides whether pkt answers the probe identified by seq and
// port, and what it means.
func (p *Prober) classify(pkt []byte, seq uint32, port uint16) (ProbeResult, bool) {
	if len(pkt) < tcpip.IPv4HeaderLen+tcpip.TCPHeaderLen || !tcpip.IsIPv4(pkt) {
		return ProbeFiltered, false
	}

	ip := tcpip.IPv4Packet(pkt)
	if ip.Protocol() != tcpip.TCP || int(ip.TotalLen()) > len(pkt) {
		return ProbeFiltered, false
	}
	if ip.HeaderLen() < tcpip.IPv4HeaderLen || ip.HeaderLen() > ip.TotalLen() {
		return ProbeFiltered, false
	}
	if !ip.SourceIP().Equal(p.dst) || ip.DataLen() < tcpip.TCPHeaderLen {
		return ProbeFiltered, false
	}

	seg := tcpip.TCPPacket(ip.Payload())
	if seg.SourcePort() != port || seg.DestinationPort() != p.srcPort {
		return ProbeFiltered, false
	}

	if seg.RST() {
		return ProbeClosed, true
	}
	if seg.SYN() && seg.ACK() && seg.Ack() == seq+1 {
		return ProbeOpen, true
	}
	return ProbeFiltered, false
}
