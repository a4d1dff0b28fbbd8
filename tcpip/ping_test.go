//
//   date  : 2025-09-21
//   author: forgenet
//

package tcpip

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPing(t *testing.T, message []byte) *Ping {
	t.Helper()
	p := NewPingRand(rand.New(rand.NewSource(1)), message)
	require.NoError(t, p.SetSourceIP("192.168.0.1"))
	require.NoError(t, p.SetDestinationIP("8.8.8.8"))
	return p
}

func TestPingFirstMarshal(t *testing.T) {
	p := newTestPing(t, nil)
	id := p.Identifier()

	b, err := p.Marshal()
	require.NoError(t, err)

	msg := ICMPPacket(IPv4Packet(b).Payload())
	assert.Equal(t, ICMPEchoRequest, msg.Type())
	assert.Equal(t, byte(0), msg.Code())
	assert.Equal(t, id, msg.Identifier())
	assert.Equal(t, uint16(1), msg.Sequence())
}

func TestPingSequenceAdvances(t *testing.T) {
	p := newTestPing(t, nil)
	id := p.Identifier()

	for want := uint16(1); want <= 5; want++ {
		b, err := p.Marshal()
		require.NoError(t, err)

		msg := ICMPPacket(IPv4Packet(b).Payload())
		assert.Equal(t, want, msg.Sequence())
		assert.Equal(t, id, msg.Identifier(), "identifier must not drift")
	}
}

func TestPingSequenceWrap(t *testing.T) {
	p := newTestPing(t, nil)
	p.Opt = p.Opt&0xffff0000 | 0xffff
	id := p.Identifier()

	b, err := p.Marshal()
	require.NoError(t, err)

	msg := ICMPPacket(IPv4Packet(b).Payload())
	assert.Equal(t, uint16(0), msg.Sequence())
	assert.Equal(t, id, msg.Identifier(), "wrap must not carry into the identifier")
}

func TestPingFailedMarshalKeepsSequence(t *testing.T) {
	p := newTestPing(t, nil)
	p.IP.Flags = 8 // overflows the 3-bit field

	_, err := p.Marshal()
	require.ErrorIs(t, err, ErrFieldOverflow)
	assert.Equal(t, uint16(0), p.Sequence(), "failed build must not advance the sequence")

	p.IP.Flags = FlagDontFragment
	b, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), ICMPPacket(IPv4Packet(b).Payload()).Sequence())
}

func TestPingDefaultMessage(t *testing.T) {
	p := newTestPing(t, nil)
	assert.Equal(t, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), p.Payload)
}

func TestPingOddMessagePadded(t *testing.T) {
	msg := []byte("abc")
	p := newTestPing(t, msg)

	assert.Equal(t, []byte("abc "), p.Payload)
	assert.Equal(t, []byte("abc"), msg, "caller's buffer must not change")

	b, err := p.Marshal()
	require.NoError(t, err)
	assert.Equal(t, uint16(0), Checksum(0, IPv4Packet(b).Payload()))
}
