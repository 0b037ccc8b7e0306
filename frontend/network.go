package frontend

import (
	"fmt"
	"net"
	"time"

	core "example.com/h8-tiny/core_engine"
)

// NetLink carries infrared frames over a TCP stream, either by connecting
// out to a peer or by accepting a single inbound connection. It satisfies
// the core's IRLink and pumps received bytes into the system between
// frames.
type NetLink struct {
	conn net.Conn
}

// DialIR connects to a listening peer.
func DialIR(addr string) (*NetLink, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("infrared link connect failed: %w", err)
	}
	return &NetLink{conn: conn}, nil
}

// ListenIR waits for one inbound peer.
func ListenIR(addr string) (*NetLink, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("infrared link bind failed: %w", err)
	}
	defer ln.Close()
	conn, err := ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("infrared link accept failed: %w", err)
	}
	return &NetLink{conn: conn}, nil
}

// Transmit sends one finalized frame. Reports whether the whole frame went
// out.
func (l *NetLink) Transmit(data []byte) bool {
	if l == nil || l.conn == nil {
		return false
	}
	n, err := l.conn.Write(data)
	return err == nil && n == len(data)
}

// Pump moves any pending inbound bytes into the system's receive buffer.
// Call it between frames.
func (l *NetLink) Pump(s *core.System) {
	if l == nil || l.conn == nil {
		return
	}
	var buf [core.IRBufferLen]byte
	l.conn.SetReadDeadline(time.Now().Add(time.Millisecond))
	n, _ := l.conn.Read(buf[:])
	if n > 0 {
		s.IRReceive(buf[:n])
	}
}

// Close shuts the link down.
func (l *NetLink) Close() error {
	if l == nil || l.conn == nil {
		return nil
	}
	return l.conn.Close()
}
