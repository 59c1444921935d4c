package hotelcore

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const defaultGamePort = "30000"

// normalizeServerAddr accepts a bare host, host:port, or IPv6 address and
// returns a canonical host:port suitable for net.Dial. This protocol's own
// Config carries host and port as two plain fields, not a URL, so unlike a
// signaling-link normalizer this has no scheme to strip — Connect always
// calls this with whatever the caller put in Config.Host, joined with
// Config.Port.
func normalizeServerAddr(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("server address is required")
	}

	host := s
	port := defaultGamePort

	if h, p, err := net.SplitHostPort(s); err == nil {
		host = h
		port = p
	} else if ip := net.ParseIP(s); ip != nil && strings.Contains(s, ":") {
		host = s
	} else if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		host = strings.TrimPrefix(strings.TrimSuffix(s, "]"), "[")
	} else if strings.Contains(s, ":") {
		return "", fmt.Errorf("invalid server address: %q", raw)
	}

	if host == "" {
		return "", fmt.Errorf("invalid server address: missing host")
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("invalid server port: %q", port)
	}

	return net.JoinHostPort(host, strconv.Itoa(n)), nil
}

// parseProxyAddr splits a SOCKS5 proxy string of the form host:port or
// host:port:user:pass into its dial address and optional credentials.
func parseProxyAddr(raw string) (addr, user, pass string, err error) {
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 2:
		return net.JoinHostPort(parts[0], parts[1]), "", "", nil
	case 4:
		return net.JoinHostPort(parts[0], parts[1]), parts[2], parts[3], nil
	default:
		return "", "", "", fmt.Errorf("invalid proxy address %q: want host:port or host:port:user:pass", raw)
	}
}
