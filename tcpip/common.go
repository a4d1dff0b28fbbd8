//
//   date  : 2025-09-18
//   author: forgenet
//

// Package tcpip builds raw IPv4, TCP and ICMP packets byte for byte.
//
// Builders (IPv4Header, TCPHeader, ICMPMessage, Ping) are constructed once,
// configured through their fields and setters, and marshalled any number of
// times; marshalling advances per-packet counters (IP identification, ping
// sequence) as a documented side effect. The package performs no I/O.
package tcpip

import (
	"math/rand"
	"net"
	"time"
)

// IPProtocol selects the protocol field of an IPv4 header.
type IPProtocol byte

const (
	HOPOPT IPProtocol = 0
	ICMP   IPProtocol = 1
	IGMP   IPProtocol = 2
	GGP    IPProtocol = 3
	IPinIP IPProtocol = 4
	ST     IPProtocol = 5
	TCP    IPProtocol = 6
	CBT    IPProtocol = 7
	EGP    IPProtocol = 8
	IGP    IPProtocol = 9
)

// ICMPType selects the type field of an ICMP message.
type ICMPType byte

const (
	ICMPEchoReply           ICMPType = 0
	ICMPDestUnreachable     ICMPType = 3
	ICMPRedirect            ICMPType = 5
	ICMPEchoRequest         ICMPType = 8
	ICMPRouterAdvertisement ICMPType = 9
	ICMPRouterSolicitation  ICMPType = 10
	ICMPTimeExceeded        ICMPType = 11
	ICMPBadIPHeader         ICMPType = 12
	ICMPTimestamp           ICMPType = 13
	ICMPTimestampReply      ICMPType = 14
)

// Known reports whether t is one of the recognized ICMP types.
func (t ICMPType) Known() bool {
	switch t {
	case ICMPEchoReply, ICMPDestUnreachable, ICMPRedirect, ICMPEchoRequest,
		ICMPRouterAdvertisement, ICMPRouterSolicitation, ICMPTimeExceeded,
		ICMPBadIPHeader, ICMPTimestamp, ICMPTimestampReply:
		return true
	}
	return false
}

// globalRand seeds TCP initial sequence numbers and ping identifiers for
// the plain constructors; the ...Rand variants take their own source.
var globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func IsIPv4(packet []byte) bool {
	return (packet[0] >> 4) == 4
}

func ConvertIPv4ToUint32(ip net.IP) uint32 {
	ip = ip.To4()
	if ip == nil {
		return 0
	}

	v := uint32(ip[0]) << 24
	v += uint32(ip[1]) << 16
	v += uint32(ip[2]) << 8
	v += uint32(ip[3])
	return v
}

func ConvertUint32ToIPv4(v uint32) net.IP {
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
