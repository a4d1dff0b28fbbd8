//
//   date  : 2025-10-03
//   author: forgenet
//

package forge

import (
	"net"
	"time"
)

// Transport carries crafted packets to and from the network. Send
// transmits one complete packet (IP header included) toward dst; Receive
// blocks until a packet arrives and copies it into buf. Implementations
// require elevated privilege to open.
type Transport interface {
	Send(pkt []byte, dst net.IP) (int, error)
	Receive(buf []byte) (int, error)
	Close() error
}

// receiveDeadliner is implemented by transports whose Receive can be
// bounded. The pinger and prober use it to enforce their reply timeouts.
type receiveDeadliner interface {
	SetReceiveTimeout(d time.Duration) error
}
