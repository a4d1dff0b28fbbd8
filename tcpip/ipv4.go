//
//   date  : 2025-09-18
//   author: forgenet
//

package tcpip

import (
	"encoding/binary"
	"fmt"
	"net"
)

// IPv4HeaderLen is the size of a header without options, the only kind
// this package produces.
const IPv4HeaderLen = 20

// IPv4Header assembles the 20-byte IPv4 header every packet rests on.
//
// Marshal is deliberately not idempotent: the identification counter
// advances on every call, wrapping from 0xffff back to 1, so each emitted
// packet carries a distinct id even when nothing else changed. Everything
// else about the header only changes when the caller changes it.
type IPv4Header struct {
	Version    uint8 // 4 bits
	HeaderLen  uint8 // 4 bits, in 32-bit words
	DSCP       uint8 // 6 bits
	ECN        uint8 // 2 bits
	ID         uint16
	Flags      uint8  // 3 bits
	FragOffset uint16 // 13 bits
	TTL        uint8
	Protocol   IPProtocol

	totalLen uint16 // computed from HeaderLen and the payload on Marshal
	checksum uint16 // computed on Marshal
	src      uint32
	dst      uint32
}

// FlagDontFragment is the default Flags value.
const FlagDontFragment = 2

// NewIPv4Header returns a header for the given protocol with conventional
// defaults: version 4, five header words, id 1, don't-fragment, ttl 255.
// Source and destination start at 0.0.0.0.
func NewIPv4Header(protocol IPProtocol) *IPv4Header {
	return &IPv4Header{
		Version:   4,
		HeaderLen: 5,
		ID:        1,
		Flags:     FlagDontFragment,
		TTL:       255,
		Protocol:  protocol,
	}
}

// SetSourceIP parses a dotted-quad address into the source field.
func (h *IPv4Header) SetSourceIP(s string) error {
	v, err := parseIPv4(s)
	if err != nil {
		return err
	}
	h.src = v
	return nil
}

// SetDestinationIP parses a dotted-quad address into the destination field.
func (h *IPv4Header) SetDestinationIP(s string) error {
	v, err := parseIPv4(s)
	if err != nil {
		return err
	}
	h.dst = v
	return nil
}

func (h *IPv4Header) SourceIP() net.IP {
	return ConvertUint32ToIPv4(h.src)
}

func (h *IPv4Header) DestinationIP() net.IP {
	return ConvertUint32ToIPv4(h.dst)
}

func parseIPv4(s string) (uint32, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return 0, fmt.Errorf("%w: %q", ErrAddressFormat, s)
	}
	return ConvertIPv4ToUint32(ip), nil
}

func (h *IPv4Header) validate() error {
	if err := checkField("version", uint32(h.Version), 4); err != nil {
		return err
	}
	if err := checkField("header-length", uint32(h.HeaderLen), 4); err != nil {
		return err
	}
	if err := checkField("dscp", uint32(h.DSCP), 6); err != nil {
		return err
	}
	if err := checkField("ecn", uint32(h.ECN), 2); err != nil {
		return err
	}
	if err := checkField("flags", uint32(h.Flags), 3); err != nil {
		return err
	}
	return checkField("fragment-offset", uint32(h.FragOffset), 13)
}

// Marshal validates every field against its wire width, packs the header
// with totalLen = HeaderLen*4 + payloadLen, computes the checksum over the
// packed bytes and returns the finished 20-byte header. The identification
// counter advances only after the output bytes are final, so the emitted
// checksum always matches the emitted id.
func (h *IPv4Header) Marshal(payloadLen int) ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	totalLen := int(h.HeaderLen)*4 + payloadLen
	if totalLen < 0 || totalLen > 0xffff {
		return nil, &FieldError{Field: "total-length", Value: uint32(totalLen), Bits: 16}
	}
	h.totalLen = uint16(totalLen)
	h.checksum = 0

	b := h.pack()
	h.checksum = Checksum(0, b)
	binary.BigEndian.PutUint16(b[10:], h.checksum)

	// id must be unique per emitted packet; 0 is skipped on wraparound
	if h.ID < 0xffff {
		h.ID++
	} else {
		h.ID = 1
	}
	return b, nil
}

// pack serializes the current fields with a zero checksum. Sub-byte fields
// are combined onto their byte boundaries here and nowhere else.
func (h *IPv4Header) pack() []byte {
	b := make([]byte, IPv4HeaderLen)
	b[0] = h.Version<<4 | h.HeaderLen
	b[1] = h.DSCP<<2 | h.ECN
	binary.BigEndian.PutUint16(b[2:], h.totalLen)
	binary.BigEndian.PutUint16(b[4:], h.ID)
	binary.BigEndian.PutUint16(b[6:], uint16(h.Flags)<<13|h.FragOffset)
	b[8] = h.TTL
	b[9] = byte(h.Protocol)
	binary.BigEndian.PutUint32(b[12:], h.src)
	binary.BigEndian.PutUint32(b[16:], h.dst)
	return b
}
