//
//   date  : 2025-10-06
//   author: forgenet
//

package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confData = `
	[General]
	log-level = debug
	source = 192.168.1.10

	[Ping]
	count = 10
	interval-ms = 200
	timeout-ms = 1000
	ttl = 64
	payload = abcdef

	[Probe]
	ports = 22,80,443
	timeout-ms = 500
	source-port = 54321

	[DNS]
	server = 8.8.8.8,1.1.1.1:5353
	timeout-ms = 2000

	[Transport]
	mode = tun
	network = 10.89.0.1/24
	mtu = 1400
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(confData))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "192.168.1.10", cfg.General.Source)

	assert.Equal(t, 10, cfg.Ping.Count)
	assert.Equal(t, uint(200), cfg.Ping.IntervalMs)
	assert.Equal(t, uint(1000), cfg.Ping.TimeoutMs)
	assert.Equal(t, uint(64), cfg.Ping.Ttl)
	assert.Equal(t, "abcdef", cfg.Ping.Payload)

	assert.Equal(t, []uint{22, 80, 443}, cfg.Probe.Ports)
	assert.Equal(t, uint16(54321), cfg.Probe.SourcePort)

	assert.Equal(t, []string{"8.8.8.8", "1.1.1.1:5353"}, cfg.Dns.Server)

	assert.Equal(t, TransportTun, cfg.Transport.Mode)
	assert.Equal(t, "10.89.0.1/24", cfg.Transport.Network)
	assert.Equal(t, 1400, cfg.Transport.Mtu)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.General.Source)
	assert.Equal(t, 4, cfg.Ping.Count)
	assert.Equal(t, uint(1000), cfg.Ping.IntervalMs)
	assert.Equal(t, uint(255), cfg.Ping.Ttl)
	assert.Equal(t, TransportRaw, cfg.Transport.Mode)
	assert.Equal(t, 1500, cfg.Transport.Mtu)
	assert.NotEmpty(t, cfg.Dns.Server, "dns servers fall back to the system resolvers")
}

func TestParseConfigDnsEnvOverride(t *testing.T) {
	t.Setenv(envDnsServer, "9.9.9.9,149.112.112.112")

	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, []string{"9.9.9.9", "149.112.112.112"}, cfg.Dns.Server)
}

func TestParseConfigInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad source", "[General]\nsource = not-an-ip\n"},
		{"bad count", "[Ping]\ncount = -1\n"},
		{"bad ttl", "[Ping]\nttl = 300\n"},
		{"bad port", "[Probe]\nports = 22,70000\n"},
		{"bad mode", "[Transport]\nmode = pigeon\n"},
		{"bad network", "[Transport]\nmode = tun\nnetwork = 10.89.0.1\n"},
		{"bad mtu", "[Transport]\nmode = tun\nmtu = 100\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(c.data))
			assert.Error(t, err)
		})
	}
}
