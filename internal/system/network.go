package system

import (
	"fmt"
	"net"
	"strings"
)

// LocalIPv4 returns the first non-loopback IPv4 address of an interface
// that is up, or "" when there is none.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("list interfaces: %w", err)
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
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
	}
	return "", nil
}

// ViewerURL builds the URL other devices can use to reach a server listening
// on listenAddr. Wildcard or empty hosts are replaced by host.
func ViewerURL(listenAddr, host string) string {
	h, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		// No port: a bare host served on :80.
		h, port = listenAddr, ""
	}
	if h == "" || h == "0.0.0.0" || h == "::" {
		h = host
	}
	if h == "" {
		h = "127.0.0.1"
	}
	if port == "" || port == "80" {
		return "http://" + bracketIPv6(h) + "/"
	}
	return "http://" + net.JoinHostPort(h, port) + "/"
}

func bracketIPv6(h string) string {
	if strings.Contains(h, ":") {
		return "[" + h + "]"
	}
	return h
}
