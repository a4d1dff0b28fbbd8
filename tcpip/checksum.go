//
//   date  : 2025-09-18
//   author: forgenet
//

package tcpip

// Sum adds up b as 16-bit big-endian words without folding the carries.
// An odd trailing byte counts as the high byte of a zero-padded final word.
func Sum(b []byte) uint32 {
	var sum uint32

	n := len(b)
	for i := 0; i < n; i = i + 2 {
		sum += uint32(b[i]) << 8
		if i+1 < n {
			sum += uint32(b[i+1])
		}
	}
	return sum
}

// Checksum computes the RFC 1071 one's-complement checksum over b,
// seeded with sum. Seeding is how the TCP pseudo-header flows into the
// segment checksum; IP and ICMP pass 0.
//
// The field the result lands in must be zero in b, since the checksum
// covers its own field. Checksum(0, nil) is 0xffff.
func Checksum(sum uint32, b []byte) uint16 {
	sum += Sum(b)
	sum = (sum >> 16) + (sum & 0xffff)
	sum += sum >> 16
	return ^uint16(sum)
}
