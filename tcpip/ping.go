//
//   date  : 2025-09-19
//   author: forgenet
//

package tcpip

import "math/rand"

// defaultPingPayload keeps the message even-length so the checksum never
// needs a pad word.
var defaultPingPayload = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Ping is a fixed echo-request specialization of ICMPMessage. One instance
// keeps the random identifier assigned at construction for its whole life
// and advances the sequence number on every Marshal, so repeated calls emit
// a conventional, monotonically numbered ping train starting at 1.
type Ping struct {
	*ICMPMessage
}

// NewPing returns a ping builder carrying message, or a fixed default
// message when message is nil. An odd-length message is padded with one
// space byte to keep it even.
func NewPing(message []byte) *Ping {
	return NewPingRand(globalRand, message)
}

// NewPingRand is NewPing with the identifier drawn from rnd.
func NewPingRand(rnd *rand.Rand, message []byte) *Ping {
	if message == nil {
		message = defaultPingPayload
	}
	if len(message)%2 != 0 {
		padded := make([]byte, len(message)+1)
		copy(padded, message)
		padded[len(message)] = ' '
		message = padded
	}

	// the type is in the recognized set, so this cannot fail
	m, _ := NewICMPMessage(ICMPEchoRequest, 0, message)
	m.Opt = uint32(rnd.Intn(0x10000)) << 16
	return &Ping{ICMPMessage: m}
}

// Identifier returns the echo identifier assigned at construction.
func (p *Ping) Identifier() uint16 {
	return uint16(p.Opt >> 16)
}

// Sequence returns the sequence number of the last marshalled request,
// or 0 before the first Marshal.
func (p *Ping) Sequence() uint16 {
	return uint16(p.Opt)
}

// Marshal advances the sequence number and emits the next echo request.
// The sequence wraps within the low 16 bits; the identifier never changes.
// A failed build leaves the sequence where it was.
func (p *Ping) Marshal() ([]byte, error) {
	prev := p.Opt
	p.Opt = prev&0xffff0000 | uint32(uint16(prev)+1)
	b, err := p.ICMPMessage.Marshal()
	if err != nil {
		p.Opt = prev
		return nil, err
	}
	return b, nil
}
