//
//   date  : 2025-09-19
//   author: forgenet
//

package tcpip

import (
	"encoding/binary"
	"math/rand"
)

// TCPHeaderLen is the size of a TCP header without options.
const TCPHeaderLen = 20

// TCPHeader assembles a 20-byte TCP header plus payload on top of an owned
// IPv4 header. The IP layer is preconfigured for protocol TCP and is only
// reachable through the builder; marshalling the segment also marshals the
// IP header beneath it, advancing its identification counter.
type TCPHeader struct {
	SrcPort   uint16
	DstPort   uint16
	Seq       uint32 // randomized at construction
	Ack       uint32
	HeaderLen uint8 // 4 bits, in 32-bit words
	Reserved  uint8 // 3 bits

	NS, CWR, ECE, URG, ACK, PSH, RST, SYN, FIN bool

	WindowSize    uint16
	UrgentPointer uint16

	// Options is a placeholder and must stay zero; option encoding is
	// not implemented and a non-zero value fails Marshal.
	Options uint32

	Payload []byte

	IP *IPv4Header

	checksum uint16
}

// NewTCPHeader returns a TCP builder carrying payload, with five header
// words, a full window and a random initial sequence number.
func NewTCPHeader(payload []byte) *TCPHeader {
	return NewTCPHeaderRand(globalRand, payload)
}

// NewTCPHeaderRand is NewTCPHeader with the initial sequence number drawn
// from rnd, letting tests pin it.
func NewTCPHeaderRand(rnd *rand.Rand, payload []byte) *TCPHeader {
	return &TCPHeader{
		Seq:        rnd.Uint32(),
		HeaderLen:  5,
		WindowSize: 65535,
		Payload:    payload,
		IP:         NewIPv4Header(TCP),
	}
}

func (h *TCPHeader) SetSourceIP(s string) error {
	return h.IP.SetSourceIP(s)
}

func (h *TCPHeader) SetDestinationIP(s string) error {
	return h.IP.SetDestinationIP(s)
}

func (h *TCPHeader) SetSourcePort(port uint16) {
	h.SrcPort = port
}

func (h *TCPHeader) SetDestinationPort(port uint16) {
	h.DstPort = port
}

func (h *TCPHeader) validate() error {
	if err := checkField("header-length", uint32(h.HeaderLen), 4); err != nil {
		return err
	}
	return checkField("reserved", uint32(h.Reserved), 3)
}

// Marshal assembles ip header ++ tcp header ++ payload. The segment
// checksum is seeded with the pseudo-header built from the owned IP
// header's current addresses and protocol. The options check runs before
// anything mutates, so a failed call leaves every counter untouched.
func (h *TCPHeader) Marshal() ([]byte, error) {
	if h.Options != 0 {
		return nil, ErrOptionsUnsupported
	}
	if err := h.validate(); err != nil {
		return nil, err
	}

	segLen := int(h.HeaderLen)*4 + len(h.Payload)
	if segLen > 0xffff {
		return nil, &FieldError{Field: "segment-length", Value: uint32(segLen), Bits: 16}
	}

	h.checksum = 0
	seg := h.pack()

	pseudo := h.pseudoHeader(uint16(segLen))
	h.checksum = Checksum(Sum(pseudo)+Sum(seg), h.Payload)
	binary.BigEndian.PutUint16(seg[16:], h.checksum)

	ipHdr, err := h.IP.Marshal(len(seg) + len(h.Payload))
	if err != nil {
		return nil, err
	}

	packet := make([]byte, 0, len(ipHdr)+len(seg)+len(h.Payload))
	packet = append(packet, ipHdr...)
	packet = append(packet, seg...)
	packet = append(packet, h.Payload...)
	return packet, nil
}

// pack serializes the 20 header bytes with a zero checksum.
func (h *TCPHeader) pack() []byte {
	b := make([]byte, TCPHeaderLen)
	binary.BigEndian.PutUint16(b, h.SrcPort)
	binary.BigEndian.PutUint16(b[2:], h.DstPort)
	binary.BigEndian.PutUint32(b[4:], h.Seq)
	binary.BigEndian.PutUint32(b[8:], h.Ack)
	b[12] = h.HeaderLen<<4 | h.Reserved<<1 | flagBit(h.NS)
	b[13] = flagBit(h.CWR)<<7 | flagBit(h.ECE)<<6 | flagBit(h.URG)<<5 |
		flagBit(h.ACK)<<4 | flagBit(h.PSH)<<3 | flagBit(h.RST)<<2 |
		flagBit(h.SYN)<<1 | flagBit(h.FIN)
	binary.BigEndian.PutUint16(b[14:], h.WindowSize)
	binary.BigEndian.PutUint16(b[18:], h.UrgentPointer)
	return b
}

// pseudoHeader builds the synthetic 12 bytes that seed the TCP checksum:
// source, destination, a zero byte, protocol and segment length. It is
// never transmitted.
func (h *TCPHeader) pseudoHeader(segLen uint16) []byte {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b, h.IP.src)
	binary.BigEndian.PutUint32(b[4:], h.IP.dst)
	b[9] = byte(h.IP.Protocol)
	binary.BigEndian.PutUint16(b[10:], segLen)
	return b
}

func flagBit(set bool) byte {
	if set {
		return 1
	}
	return 0
}
