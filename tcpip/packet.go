//
//   date  : 2025-09-20
//   author: forgenet
//

package tcpip

import (
	"encoding/binary"
	"net"
)

// Read-side views over received packets. A view is just the raw bytes;
// callers must check IsIPv4 and lengths before slicing into one.

type IPv4Packet []byte

func (p IPv4Packet) TotalLen() uint16 {
	return binary.BigEndian.Uint16(p[2:])
}

func (p IPv4Packet) HeaderLen() uint16 {
	return uint16(p[0]&0xf) * 4
}

func (p IPv4Packet) DataLen() uint16 {
	return p.TotalLen() - p.HeaderLen()
}

func (p IPv4Packet) Payload() []byte {
	return p[p.HeaderLen():p.TotalLen()]
}

func (p IPv4Packet) ID() uint16 {
	return binary.BigEndian.Uint16(p[4:])
}

func (p IPv4Packet) TTL() byte {
	return p[8]
}

func (p IPv4Packet) Protocol() IPProtocol {
	return IPProtocol(p[9])
}

func (p IPv4Packet) Checksum() uint16 {
	return binary.BigEndian.Uint16(p[10:])
}

func (p IPv4Packet) SourceIP() net.IP {
	var ip = [4]byte{p[12], p[13], p[14], p[15]}
	return net.IP(ip[:])
}

func (p IPv4Packet) DestinationIP() net.IP {
	var ip = [4]byte{p[16], p[17], p[18], p[19]}
	return net.IP(ip[:])
}

// ICMPPacket views the payload of an IPv4 packet carrying ICMP.
type ICMPPacket []byte

func (p ICMPPacket) Type() ICMPType {
	return ICMPType(p[0])
}

func (p ICMPPacket) Code() byte {
	return p[1]
}

func (p ICMPPacket) Checksum() uint16 {
	return binary.BigEndian.Uint16(p[2:])
}

// Identifier and Sequence read the option field halves of echo messages.
func (p ICMPPacket) Identifier() uint16 {
	return binary.BigEndian.Uint16(p[4:])
}

func (p ICMPPacket) Sequence() uint16 {
	return binary.BigEndian.Uint16(p[6:])
}

func (p ICMPPacket) Payload() []byte {
	return p[ICMPHeaderLen:]
}

// TCPPacket views the payload of an IPv4 packet carrying TCP.
type TCPPacket []byte

func (p TCPPacket) SourcePort() uint16 {
	return binary.BigEndian.Uint16(p)
}

func (p TCPPacket) DestinationPort() uint16 {
	return binary.BigEndian.Uint16(p[2:])
}

func (p TCPPacket) Seq() uint32 {
	return binary.BigEndian.Uint32(p[4:])
}

func (p TCPPacket) Ack() uint32 {
	return binary.BigEndian.Uint32(p[8:])
}

func (p TCPPacket) SYN() bool {
	return p[13]&0x02 != 0
}

func (p TCPPacket) ACK() bool {
	return p[13]&0x10 != 0
}

func (p TCPPacket) RST() bool {
	return p[13]&0x04 != 0
}

func (p TCPPacket) FIN() bool {
	return p[13]&0x01 != 0
}

func (p TCPPacket) Checksum() uint16 {
	return binary.BigEndian.Uint16(p[16:])
}
