//
//   date  : 2025-10-03
//   author: forgenet
//

//go:build !linux && !darwin
// +build !linux,!darwin

package forge

import (
	"net"
	"time"

	"github.com/forgenet/forge/tcpip"
)

type RawSocket struct{}

func NewRawSocket(recvProtocol tcpip.IPProtocol) (*RawSocket, error) {
	return nil, errOS
}

func (s *RawSocket) Send(pkt []byte, dst net.IP) (int, error) {
	return 0, errOS
}

func (s *RawSocket) Receive(buf []byte) (int, error) {
	return 0, errOS
}

func (s *RawSocket) SetReceiveTimeout(d time.Duration) error {
	return errOS
}

func (s *RawSocket) Close() error {
	return errOS
}
