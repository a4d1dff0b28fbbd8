//
//   date  : 2025-09-18
//   author: forgenet
//

package tcpip

import (
	"errors"
	"fmt"
)

var (
	// ErrAddressFormat reports a string that is not a dotted-quad IPv4 address.
	ErrAddressFormat = errors.New("tcpip: not an IPv4 address")

	// ErrOptionsUnsupported reports a TCP header with a non-zero options
	// placeholder; option encoding is not implemented.
	ErrOptionsUnsupported = errors.New("tcpip: TCP options not supported")

	// ErrUnknownType reports an ICMP type outside the recognized set.
	ErrUnknownType = errors.New("tcpip: unknown ICMP type")

	// ErrFieldOverflow reports a header field assigned a value that does
	// not fit its wire width.
	ErrFieldOverflow = errors.New("tcpip: field overflows its bit width")
)

// FieldError carries the field, value and declared width behind an
// ErrFieldOverflow. It matches ErrFieldOverflow under errors.Is.
type FieldError struct {
	Field string
	Value uint32
	Bits  int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("tcpip: field %s: %#x overflows %d bits", e.Field, e.Value, e.Bits)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldOverflow
}

// checkField validates one sub-byte field against its declared width.
// Byte- and word-aligned fields are bounded by their Go types and need
// no check, which keeps rejection uniform across the rest.
func checkField(field string, value uint32, bits int) error {
	if value >= 1<<bits {
		return &FieldError{Field: field, Value: value, Bits: bits}
	}
	return nil
}
