//
//   date  : 2025-10-03
//   author: forgenet
//

//go:build linux || darwin
// +build linux darwin

package forge

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/forgenet/forge/tcpip"
)

// RawSocket sends and receives complete IPv4 packets. Two descriptors back
// it: an IPPROTO_RAW socket with IP_HDRINCL for sending (the kernel never
// rewrites our headers), and a SOCK_RAW socket bound to one protocol for
// receiving, since IPPROTO_RAW cannot receive. Requires root.
type RawSocket struct {
	sendFd int
	recvFd int
}

func NewRawSocket(recvProtocol tcpip.IPProtocol) (*RawSocket, error) {
	sendFd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	if err != nil {
		return nil, fmt.Errorf("[rawsock] send socket: %w", err)
	}

	if err := unix.SetsockoptInt(sendFd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		unix.Close(sendFd)
		return nil, fmt.Errorf("[rawsock] IP_HDRINCL: %w", err)
	}

	recvFd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, int(recvProtocol))
	if err != nil {
		unix.Close(sendFd)
		return nil, fmt.Errorf("[rawsock] receive socket: %w", err)
	}

	return &RawSocket{sendFd: sendFd, recvFd: recvFd}, nil
}

func (s *RawSocket) Send(pkt []byte, dst net.IP) (int, error) {
	ip4 := dst.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("[rawsock] destination %s is not IPv4", dst)
	}

	var sa unix.SockaddrInet4
	copy(sa.Addr[:], ip4)

	if err := unix.Sendto(s.sendFd, pkt, 0, &sa); err != nil {
		return 0, fmt.Errorf("[rawsock] sendto %s: %w", dst, err)
	}
	return len(pkt), nil
}

func (s *RawSocket) Receive(buf []byte) (int, error) {
	n, _, err := unix.Recvfrom(s.recvFd, buf, 0)
	if err != nil {
		return 0, fmt.Errorf("[rawsock] recvfrom: %w", err)
	}
	return n, nil
}

// SetReceiveTimeout bounds the next Receive calls; d <= 0 blocks forever.
func (s *RawSocket) SetReceiveTimeout(d time.Duration) error {
	if d < 0 {
		d = 0
	}
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return unix.SetsockoptTimeval(s.recvFd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (s *RawSocket) Close() error {
	err := unix.Close(s.sendFd)
	if e := unix.Close(s.recvFd); err == nil {
		err = e
	}
	return err
}
