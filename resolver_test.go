//
//   date  : 2025-10-06
//   author: forgenet
//

package forge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverNameserverPorts(t *testing.T) {
	r := NewResolver(DnsConfig{
		Server:    []string{"8.8.8.8", "9.9.9.9:5353"},
		TimeoutMs: 100,
	})

	assert.Equal(t, []string{"8.8.8.8:53", "9.9.9.9:5353"}, r.nameservers)
}

func TestResolverLiteralAddress(t *testing.T) {
	r := NewResolver(DnsConfig{TimeoutMs: 100})

	// literals never touch the network
	ip, err := r.ResolveIPv4("10.1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", ip.String())
}

func TestResolverRejectsIPv6Literal(t *testing.T) {
	r := NewResolver(DnsConfig{TimeoutMs: 100})

	_, err := r.ResolveIPv4("2001:db8::1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResolve))
}
