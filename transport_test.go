//
//   date  : 2025-10-07
//   author: forgenet
//

package forge

import (
	"errors"
	"net"
	"time"
)

var errNoPacket = errors.New("no packet queued")

// fakeTransport answers each Send by running reply over the sent packet
// and queueing whatever it returns; Receive drains the queue and fails
// like a timed-out socket once it is empty.
type fakeTransport struct {
	reply func(pkt []byte) []byte

	sent   [][]byte
	queue  [][]byte
	closed bool
}

func (t *fakeTransport) Send(pkt []byte, dst net.IP) (int, error) {
	t.sent = append(t.sent, append([]byte(nil), pkt...))
	if t.reply != nil {
		if r := t.reply(pkt); r != nil {
			t.queue = append(t.queue, r)
		}
	}
	return len(pkt), nil
}

func (t *fakeTransport) Receive(buf []byte) (int, error) {
	if len(t.queue) == 0 {
		return 0, errNoPacket
	}
	pkt := t.queue[0]
	t.queue = t.queue[1:]
	return copy(buf, pkt), nil
}

func (t *fakeTransport) SetReceiveTimeout(d time.Duration) error {
	return nil
}

func (t *fakeTransport) Close() error {
	t.closed = true
	return nil
}
