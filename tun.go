//
//   date  : 2025-10-04
//   author: forgenet
//

package forge

import (
	"fmt"
	"net"

	"github.com/songgao/water"
)

// TunTransport injects crafted packets into a TUN device instead of the
// wire, which keeps experiments on a private network the kernel routes
// locally. The destination argument of Send is ignored: routing follows
// the addresses already packed into the IP header.
type TunTransport struct {
	ifce *water.Interface
}

func NewTunTransport(network string, mtu int) (*TunTransport, error) {
	ip, subnet, err := net.ParseCIDR(network)
	if err != nil {
		return nil, fmt.Errorf("[tun] invalid network: %s", network)
	}

	ifce, err := createTun(ip.To4(), subnet.Mask, mtu)
	if err != nil {
		return nil, err
	}
	return &TunTransport{ifce: ifce}, nil
}

func (t *TunTransport) Name() string {
	return t.ifce.Name()
}

func (t *TunTransport) Send(pkt []byte, dst net.IP) (int, error) {
	return t.ifce.Write(pkt)
}

func (t *TunTransport) Receive(buf []byte) (int, error) {
	return t.ifce.Read(buf)
}

func (t *TunTransport) Close() error {
	return t.ifce.Close()
}
