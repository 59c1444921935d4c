package hotelcore

import (
	"context"
	"fmt"
	"net"

	"golang.org/x/net/proxy"
)

// dialGameServer opens a TCP connection to addr, optionally tunneled
// through a SOCKS5 proxy described by cfg.ProxyAddr ("host:port" or
// "host:port:user:pass"). DNS resolution happens through the proxy
// whenever one is configured.
func dialGameServer(ctx context.Context, cfg Config, addr string) (net.Conn, error) {
	if cfg.ProxyAddr == "" {
		d := net.Dialer{}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnect, err)
		}
		return conn, nil
	}

	proxyAddr, user, pass, err := parseProxyAddr(cfg.ProxyAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxy, err)
	}

	var auth *proxy.Auth
	if user != "" {
		auth = &proxy.Auth{User: user, Password: pass}
	}

	dialer, err := proxy.SOCKS5("tcp", proxyAddr, auth, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxy, err)
	}

	type contextDialer interface {
		DialContext(ctx context.Context, network, addr string) (net.Conn, error)
	}
	if cd, ok := dialer.(contextDialer); ok {
		conn, err := cd.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProxy, err)
		}
		return conn, nil
	}

	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProxy, err)
	}
	return conn, nil
}
