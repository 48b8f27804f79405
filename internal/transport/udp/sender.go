// SPDX-License-Identifier: MIT

// Package udp publishes tuner readings as compact binary datagrams, for
// displays that poll a socket instead of holding a websocket open.
package udp

import (
	"fmt"
	"net"
	"sync"

	applog "tuner/internal/log"
)

// Sender transmits packets to a fixed UDP target.
type Sender struct {
	conn   *net.UDPConn
	mu     sync.Mutex // guards conn against concurrent Close
	closed bool
}

// NewSender dials the target address, e.g. "127.0.0.1:9090".
func NewSender(targetAddress string) (*Sender, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", targetAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP target address %q: %w", targetAddress, err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial UDP target %q: %w", targetAddress, err)
	}

	applog.Infof("UDP: sending readings to %s", conn.RemoteAddr())
	return &Sender{conn: conn}, nil
}

// Send transmits one packet. Safe for concurrent use.
func (s *Sender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("UDP sender is closed")
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send UDP packet: %w", err)
	}
	return nil
}

// Close shuts the connection down. Idempotent.
func (s *Sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close UDP connection: %w", err)
	}
	return nil
}
