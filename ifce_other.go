//
//   date  : 2025-10-04
//   author: forgenet
//

//go:build !linux && !darwin
// +build !linux,!darwin

package forge

import (
	"errors"
	"net"

	"github.com/songgao/water"
)

var errOS = errors.New("unsupported os")

func createTun(ip net.IP, mask net.IPMask, mtu int) (*water.Interface, error) {
	return nil, errOS
}
