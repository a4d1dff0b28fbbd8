//
//   date  : 2025-10-07
//   author: forgenet
//

package forge

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgenet/forge/tcpip"
)

// echoReply forges the reply a remote host would send: same id, sequence
// and payload, type flipped to echo-reply, addresses swapped.
func echoReply(pkt []byte) []byte {
	ip := tcpip.IPv4Packet(pkt)
	req := tcpip.ICMPPacket(ip.Payload())

	m, err := tcpip.NewICMPMessage(tcpip.ICMPEchoReply, 0, req.Payload())
	if err != nil {
		return nil
	}
	m.Opt = uint32(req.Identifier())<<16 | uint32(req.Sequence())
	if err := m.SetSourceIP(ip.DestinationIP().String()); err != nil {
		return nil
	}
	if err := m.SetDestinationIP(ip.SourceIP().String()); err != nil {
		return nil
	}

	b, err := m.Marshal()
	if err != nil {
		return nil
	}
	return b
}

func newTestPinger(t *testing.T, transport Transport, cfg PingConfig) *Pinger {
	t.Helper()
	p, err := NewPinger(transport, net.ParseIP("192.168.1.10"), net.ParseIP("8.8.8.8").To4(), cfg)
	require.NoError(t, err)
	return p
}

func TestPingerAllReplies(t *testing.T) {
	transport := &fakeTransport{reply: echoReply}
	p := newTestPinger(t, transport, PingConfig{Count: 3, TimeoutMs: 100, Ttl: 64})

	stats := p.Run()
	assert.Equal(t, 3, stats.Sent)
	assert.Equal(t, 3, stats.Received)
	assert.Equal(t, 0.0, stats.Loss())

	// emitted requests carry sequences 1..3
	for i, pkt := range transport.sent {
		msg := tcpip.ICMPPacket(tcpip.IPv4Packet(pkt).Payload())
		assert.Equal(t, tcpip.ICMPEchoRequest, msg.Type())
		assert.Equal(t, uint16(i+1), msg.Sequence())
	}
}

func TestPingerNoReplies(t *testing.T) {
	transport := &fakeTransport{}
	p := newTestPinger(t, transport, PingConfig{Count: 2, TimeoutMs: 20, Ttl: 64})

	stats := p.Run()
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 0, stats.Received)
	assert.Equal(t, 1.0, stats.Loss())
}

func TestPingerIgnoresForeignReplies(t *testing.T) {
	// answers with the right shape but a stale sequence number
	transport := &fakeTransport{reply: func(pkt []byte) []byte {
		b := echoReply(pkt)
		if b == nil {
			return nil
		}
		msg := tcpip.IPv4Packet(b).Payload()
		msg[6] = 0xff // clobber the sequence
		msg[7] = 0xff
		return b
	}}
	p := newTestPinger(t, transport, PingConfig{Count: 1, TimeoutMs: 20, Ttl: 64})

	stats := p.Run()
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 0, stats.Received)
}

func TestPingerIgnoresInconsistentHeaderLen(t *testing.T) {
	// a reply whose IHL claims more header than the total length holds
	transport := &fakeTransport{reply: func(pkt []byte) []byte {
		b := echoReply(pkt)
		if b == nil {
			return nil
		}
		b[0] = 0x4f // version 4, header length 60
		return b
	}}
	p := newTestPinger(t, transport, PingConfig{Count: 1, TimeoutMs: 20, Ttl: 64})

	stats := p.Run()
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 0, stats.Received)
}

func TestPingerConfiguredPayloadAndTtl(t *testing.T) {
	transport := &fakeTransport{reply: echoReply}
	p := newTestPinger(t, transport, PingConfig{Count: 1, TimeoutMs: 100, Ttl: 7, Payload: "forge-data"})

	stats := p.Run()
	require.Equal(t, 1, stats.Received)

	pkt := tcpip.IPv4Packet(transport.sent[0])
	assert.Equal(t, byte(7), pkt.TTL())
	assert.Equal(t, []byte("forge-data"), tcpip.ICMPPacket(pkt.Payload()).Payload())
}
