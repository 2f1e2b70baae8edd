package config

import (
	"net"
	"strings"

	"github.com/google/uuid"
)

// FirstIPv4 returns the first IPv4 address of an up, non-loopback network
// interface, or "" when the host has none.
func FirstIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipNet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return ip.String()
			}
		}
	}

	return ""
}

// randomValue returns a random hex string used for ${random.value}.
func randomValue() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
