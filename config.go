//
//   date  : 2025-10-02
//   author: forgenet
//

package forge

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/miekg/dns"
	"gopkg.in/ini.v1"
)

func init() {
	ini.PrettyFormat = true
}

// Transport modes.
const (
	TransportRaw = "raw"
	TransportTun = "tun"
)

// FORGE_DNS_SERVER overrides the [DNS] server list, comma separated.
const envDnsServer = "FORGE_DNS_SERVER"

type GeneralConfig struct {
	LogLevel string `ini:"log-level"`
	Source   string `ini:"source"` // source address stamped into outgoing headers
}

type PingConfig struct {
	Count      int    `ini:"count"`
	IntervalMs uint   `ini:"interval-ms"`
	TimeoutMs  uint   `ini:"timeout-ms"`
	Ttl        uint   `ini:"ttl"`
	Payload    string `ini:"payload"` // empty selects the built-in message
}

type ProbeConfig struct {
	Ports      []uint `ini:"ports" delim:","`
	TimeoutMs  uint   `ini:"timeout-ms"`
	SourcePort uint16 `ini:"source-port"` // 0 picks an ephemeral port
}

type DnsConfig struct {
	Server    []string `ini:"server" delim:","`
	TimeoutMs uint     `ini:"timeout-ms"`
}

type TransportConfig struct {
	Mode    string `ini:"mode"`    // raw or tun
	Network string `ini:"network"` // tun network
	Mtu     int    `ini:"mtu"`
}

type ForgeConfig struct {
	source interface{} // config source: file name or raw ini data
	inif   *ini.File   // parsed ini file

	General   GeneralConfig
	Ping      PingConfig
	Probe     ProbeConfig
	Dns       DnsConfig `ini:"DNS"`
	Transport TransportConfig
}

func (cfg *ForgeConfig) check() error {
	if ip := net.ParseIP(cfg.General.Source); ip == nil || ip.To4() == nil {
		return fmt.Errorf("[check general] invalid source address: %q", cfg.General.Source)
	}

	if cfg.Ping.Count <= 0 {
		return fmt.Errorf("[check ping] invalid count: %d", cfg.Ping.Count)
	}
	if cfg.Ping.Ttl == 0 || cfg.Ping.Ttl > 255 {
		return fmt.Errorf("[check ping] invalid ttl: %d", cfg.Ping.Ttl)
	}

	for _, port := range cfg.Probe.Ports {
		if port == 0 || port > 0xffff {
			return fmt.Errorf("[check probe] invalid port: %d", port)
		}
	}

	switch cfg.Transport.Mode {
	case TransportRaw:
	case TransportTun:
		if _, _, err := net.ParseCIDR(cfg.Transport.Network); err != nil {
			return fmt.Errorf("[check transport] invalid network: %s", cfg.Transport.Network)
		}
		if cfg.Transport.Mtu < minMtu {
			return fmt.Errorf("[check transport] invalid mtu: %d", cfg.Transport.Mtu)
		}
	default:
		return fmt.Errorf("[check transport] invalid mode: %q", cfg.Transport.Mode)
	}
	return nil
}

// minMtu is the RFC 791 minimum every host must accept.
const minMtu = 576

// systemDnsServers reads the resolvers the host already trusts.
func systemDnsServers() []string {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		logger.Warningf("[config] read resolv.conf failed: %v", err)
		return []string{"8.8.8.8", "1.1.1.1"} // default
	}
	return conf.Servers
}

func ParseConfig(source interface{}) (*ForgeConfig, error) {
	cfg := new(ForgeConfig)
	cfg.source = source

	// set default value
	cfg.General.Source = "0.0.0.0"

	cfg.Ping.Count = 4
	cfg.Ping.IntervalMs = 1000
	cfg.Ping.TimeoutMs = 3000
	cfg.Ping.Ttl = 255

	cfg.Probe.TimeoutMs = 2000

	cfg.Dns.TimeoutMs = 5000

	cfg.Transport.Mode = TransportRaw
	cfg.Transport.Network = "10.89.0.1/24"
	cfg.Transport.Mtu = 1500

	// decode config value
	f, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, KeyValueDelimiters: "="}, source)
	if err != nil {
		logger.Errorf("%v", err)
		return nil, err
	}
	cfg.inif = f

	if err = f.MapTo(cfg); err != nil {
		return nil, err
	}

	// read dns servers from env and set to config
	if servers := os.Getenv(envDnsServer); servers != "" {
		cfg.Dns.Server = strings.Split(servers, ",")
		logger.Debugf("[env]set dns server %s", servers)
	}

	// set backend dns default value
	if len(cfg.Dns.Server) == 0 {
		cfg.Dns.Server = systemDnsServers()
	}

	if err = cfg.check(); err != nil {
		return nil, err
	}

	return cfg, nil
}
