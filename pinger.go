//
//   date  : 2025-10-05
//   author: forgenet
//

package forge

import (
	"net"
	"time"

	"github.com/forgenet/forge/tcpip"
)

// PingStats summarizes one ping run.
type PingStats struct {
	Sent     int
	Received int

	MinRTT   time.Duration
	MaxRTT   time.Duration
	totalRTT time.Duration
}

func (s *PingStats) Loss() float64 {
	if s.Sent == 0 {
		return 0
	}
	return float64(s.Sent-s.Received) / float64(s.Sent)
}

func (s *PingStats) AvgRTT() time.Duration {
	if s.Received == 0 {
		return 0
	}
	return s.totalRTT / time.Duration(s.Received)
}

func (s *PingStats) record(rtt time.Duration) {
	s.Received++
	s.totalRTT += rtt
	if s.MinRTT == 0 || rtt < s.MinRTT {
		s.MinRTT = rtt
	}
	if rtt > s.MaxRTT {
		s.MaxRTT = rtt
	}
}

// Pinger drives one tcpip.Ping builder against a single target: every round
// marshals the next echo request, sends it and waits for the matching
// echo reply until the timeout runs out.
type Pinger struct {
	transport Transport
	ping      *tcpip.Ping
	target    net.IP

	count    int
	interval time.Duration
	timeout  time.Duration
}

func NewPinger(transport Transport, src, dst net.IP, cfg PingConfig) (*Pinger, error) {
	var message []byte
	if cfg.Payload != "" {
		message = []byte(cfg.Payload)
	}

	ping := tcpip.NewPing(message)
	if err := ping.SetSourceIP(src.String()); err != nil {
		return nil, err
	}
	if err := ping.SetDestinationIP(dst.String()); err != nil {
		return nil, err
	}
	if cfg.Ttl > 0 && cfg.Ttl <= 255 {
		ping.IP.TTL = uint8(cfg.Ttl)
	}

	return &Pinger{
		transport: transport,
		ping:      ping,
		target:    dst,
		count:     cfg.Count,
		interval:  time.Duration(cfg.IntervalMs) * time.Millisecond,
		timeout:   time.Duration(cfg.TimeoutMs) * time.Millisecond,
	}, nil
}

func (p *Pinger) Run() *PingStats {
	stats := new(PingStats)
	buf := make([]byte, receiveBufferSize)

	for i := 0; i < p.count; i++ {
		if i > 0 {
			time.Sleep(p.interval)
		}

		pkt, err := p.ping.Marshal()
		if err != nil {
			logger.Errorf("[ping] marshal failed: %v", err)
			return stats
		}

		start := time.Now()
		if _, err := p.transport.Send(pkt, p.target); err != nil {
			logger.Errorf("[ping] send to %s failed: %v", p.target, err)
			continue
		}
		stats.Sent++

		if rtt, ttl, ok := p.waitReply(buf, start); ok {
			stats.record(rtt)
			logger.Infof("[ping] reply from %s: icmp_seq=%d ttl=%d time=%v",
				p.target, p.ping.Sequence(), ttl, rtt)
		} else {
			logger.Warningf("[ping] no reply from %s: icmp_seq=%d", p.target, p.ping.Sequence())
		}
	}
	return stats
}

// waitReply reads packets until the matching echo reply shows up or the
// deadline passes. Foreign packets on the raw socket are skipped.
func (p *Pinger) waitReply(buf []byte, start time.Time) (time.Duration, byte, bool) {
	deadline := start.Add(p.timeout)
	for {
		remain := time.Until(deadline)
		if remain <= 0 {
			return 0, 0, false
		}

		if dt, ok := p.transport.(receiveDeadliner); ok {
			if err := dt.SetReceiveTimeout(remain); err != nil {
				logger.Warningf("[ping] set receive timeout: %v", err)
			}
		}

		n, err := p.transport.Receive(buf)
		if err != nil {
			logger.Debugf("[ping] receive: %v", err)
			return 0, 0, false
		}

		if !p.match(buf[:n]) {
			continue
		}
		return time.Since(start), tcpip.IPv4Packet(buf[:n]).TTL(), true
	}
}

func (p *Pinger) match(pkt []byte) bool {
	if len(pkt) < tcpip.IPv4HeaderLen || !tcpip.IsIPv4(pkt) {
		return false
	}

	ip := tcpip.IPv4Packet(pkt)
	if ip.Protocol() != tcpip.ICMP || int(ip.TotalLen()) > len(pkt) {
		return false
	}
	if ip.HeaderLen() < tcpip.IPv4HeaderLen || ip.HeaderLen() > ip.TotalLen() {
		return false
	}
	if !ip.SourceIP().Equal(p.target) || ip.DataLen() < tcpip.ICMPHeaderLen {
		return false
	}

	msg := tcpip.ICMPPacket(ip.Payload())
	return msg.Type() == tcpip.ICMPEchoReply && msg.Code() == 0 &&
		msg.Identifier() == p.ping.Identifier() &&
		msg.Sequence() == p.ping.Sequence()
}
