//
//   date  : 2025-10-04
//   author: forgenet
//

package forge

import (
	"fmt"
	"net"
	"os/exec"
	"strings"

	"github.com/songgao/water"
)

func execCommand(name, sargs string) error {
	args := strings.Split(sargs, " ")
	cmd := exec.Command(name, args...)
	logger.Infof("exec command: %s %s", name, sargs)
	return cmd.Run()
}

func initIfce(tun string, ipNet *net.IPNet, mtu int) error {
	sargs := fmt.Sprintf("addr add %s dev %s", ipNet, tun)
	if err := execCommand("ip", sargs); err != nil {
		return err
	}

	// brings the link up
	sargs = fmt.Sprintf("link set dev %s up mtu %d qlen 1000", tun, mtu)
	return execCommand("ip", sargs)
}

func createTun(ip net.IP, mask net.IPMask, mtu int) (*water.Interface, error) {
	ifce, err := water.New(water.Config{
		DeviceType: water.TUN,
	})

	if err != nil {
		return nil, err
	}

	logger.Infof("create %s", ifce.Name())

	ipNet := &net.IPNet{
		IP:   ip,
		Mask: mask,
	}

	if err := initIfce(ifce.Name(), ipNet, mtu); err != nil {
		return nil, err
	}
	return ifce, nil
}
