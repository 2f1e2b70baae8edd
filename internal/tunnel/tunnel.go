// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tunnel opens the development SSH reverse tunnel that exposes the
// local gateway port on a remote host, so that the registry can reach a
// gateway running on a developer machine.
package tunnel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

const (
	sshPort        = "22"
	dialTimeout    = 10 * time.Second
	devProfile     = "dev"
	localForwardIP = "127.0.0.1"
)

// Tunnel is an open reverse tunnel. Connections accepted on the remote
// listener are forwarded to the local port.
type Tunnel struct {
	client   io.Closer
	listener net.Listener

	remoteHost string
	remotePort int
	localAddr  string

	wg     sync.WaitGroup
	once   sync.Once
	logger *logger.Logger
}

// Enabled reports whether the tunnel should be opened: a password is
// configured and the profile is dev.
func Enabled(cfg config.SSHTunnel, profile string) bool {
	return cfg.VPSPassword != "" && profile == devProfile
}

// Open connects to <vpsHost>:22 with password authentication, listens on
// 0.0.0.0:<servicePort> on the remote side and forwards every accepted
// connection to 127.0.0.1:<localPort>.
func Open(ctx context.Context, cfg config.SSHTunnel, log *logger.Logger) (*Tunnel, error) {
	hostKeyCallback, err := hostKeyCallback(cfg.HostKey)
	if err != nil {
		return nil, err
	}
	if cfg.HostKey == "" {
		log.Warn().Str("host", cfg.VPSHost).Msg("ssh host key not configured, host key verification disabled")
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.VPSUser,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.VPSPassword)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         dialTimeout,
	}

	addr := net.JoinHostPort(cfg.VPSHost, sshPort)
	client, err := dial(ctx, addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnect, addr, err)
	}

	remoteAddr := net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.ServicePort))
	listener, err := client.Listen("tcp", remoteAddr)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrRemoteListen, remoteAddr, err)
	}

	t := newTunnel(client, listener, cfg, log)
	t.start()

	log.Info().
		Str("remote", net.JoinHostPort(cfg.VPSHost, strconv.Itoa(cfg.ServicePort))).
		Str("local", t.localAddr).
		Msg("ssh reverse tunnel established")
	return t, nil
}

func newTunnel(client io.Closer, listener net.Listener, cfg config.SSHTunnel, log *logger.Logger) *Tunnel {
	return &Tunnel{
		client:     client,
		listener:   listener,
		remoteHost: cfg.VPSHost,
		remotePort: cfg.ServicePort,
		localAddr:  net.JoinHostPort(localForwardIP, strconv.Itoa(cfg.LocalPort)),
		logger:     log,
	}
}

// dial opens the SSH client connection, honoring ctx cancellation.
func dial(ctx context.Context, addr string, clientCfg *ssh.ClientConfig) (*ssh.Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// hostKeyCallback pins the host key when one is configured in
// authorized_keys format.
func hostKeyCallback(hostKey string) (ssh.HostKeyCallback, error) {
	if hostKey == "" {
		return ssh.InsecureIgnoreHostKey(), nil //nolint:gosec
	}

	pub, _, _, _, err := ssh.ParseAuthorizedKey([]byte(hostKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHostKey, err)
	}
	return ssh.FixedHostKey(pub), nil
}

// RemoteHost returns the host other services use to reach the gateway.
func (t *Tunnel) RemoteHost() string {
	return t.remoteHost
}

// RemotePort returns the port opened on the remote host.
func (t *Tunnel) RemotePort() int {
	return t.remotePort
}

func (t *Tunnel) start() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.acceptLoop()
	}()
}

func (t *Tunnel) acceptLoop() {
	for {
		remote, err := t.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.EOF) {
				t.logger.Debug().Err(err).Msg("ssh tunnel listener stopped")
			}
			return
		}

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.forward(remote)
		}()
	}
}

func (t *Tunnel) forward(remote net.Conn) {
	defer remote.Close()

	local, err := net.DialTimeout("tcp", t.localAddr, dialTimeout)
	if err != nil {
		t.logger.Err(err).Str("local", t.localAddr).Msg("error dialing local service through ssh tunnel")
		return
	}
	defer local.Close()

	pipe(remote, local)
}

// pipe copies in both directions until either side is done.
func pipe(a, b net.Conn) {
	done := make(chan struct{}, 2)
	cp := func(dst, src net.Conn) {
		_, _ = io.Copy(dst, src)
		done <- struct{}{}
	}

	go cp(a, b)
	go cp(b, a)
	<-done
}

// Close stops accepting connections and closes the SSH connection.
// In-flight forwards end when their connections close.
func (t *Tunnel) Close() error {
	var err error
	t.once.Do(func() {
		err = errors.Join(t.listener.Close(), t.client.Close())
		t.wg.Wait()
		t.logger.Info().Msg("ssh reverse tunnel closed")
	})
	return err
}
