//
//   date  : 2025-09-19
//   author: forgenet
//

package tcpip

import (
	"encoding/binary"
	"fmt"
)

// ICMPHeaderLen is the fixed part of an ICMP message: type, code,
// checksum and the 32-bit option field.
const ICMPHeaderLen = 8

// ICMPMessage assembles an ICMP message plus payload on top of an owned
// IPv4 header preconfigured for protocol ICMP.
type ICMPMessage struct {
	Type ICMPType
	Code uint8

	// Opt is the type-specific 32-bit field; for echo messages the high
	// half is the identifier and the low half the sequence number.
	Opt uint32

	Payload []byte

	IP *IPv4Header

	checksum uint16
}

// NewICMPMessage returns a builder for a message of the given type.
// Types outside the recognized set are rejected.
func NewICMPMessage(typ ICMPType, code uint8, payload []byte) (*ICMPMessage, error) {
	if !typ.Known() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, typ)
	}
	return &ICMPMessage{
		Type:    typ,
		Code:    code,
		Payload: payload,
		IP:      NewIPv4Header(ICMP),
	}, nil
}

func (m *ICMPMessage) SetSourceIP(s string) error {
	return m.IP.SetSourceIP(s)
}

func (m *ICMPMessage) SetDestinationIP(s string) error {
	return m.IP.SetDestinationIP(s)
}

// Marshal assembles ip header ++ icmp message. The checksum covers the
// whole message, header and payload, with the checksum field zeroed.
func (m *ICMPMessage) Marshal() ([]byte, error) {
	m.checksum = 0

	msg := make([]byte, ICMPHeaderLen+len(m.Payload))
	msg[0] = byte(m.Type)
	msg[1] = m.Code
	binary.BigEndian.PutUint32(msg[4:], m.Opt)
	copy(msg[ICMPHeaderLen:], m.Payload)

	m.checksum = Checksum(0, msg)
	binary.BigEndian.PutUint16(msg[2:], m.checksum)

	ipHdr, err := m.IP.Marshal(len(msg))
	if err != nil {
		return nil, err
	}
	return append(ipHdr, msg...), nil
}
