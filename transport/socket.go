// Package transport owns the single UDP socket an engine sends and receives
// SNMP messages through: lifecycle, receive-buffer sizing, and the
// connectionless send/receive-with-deadline primitives the request engine
// builds its correlation logic on top of.
package transport

import (
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/hostaddr"
)

// TargetRecvBufferBytes is the receive buffer size an engine asks the OS
// for, to absorb bursty responses from a large fan-out poll. The OS may
// silently grant less (Linux caps this at net.core.rmem_max unless raised
// by the operator); SetReadBuffer's error, if any, is not treated as fatal
// since the socket remains usable with the OS default.
const TargetRecvBufferBytes = 4 * 1024 * 1024

// MaxPayloadSize is the largest SNMP message a Socket will send or expects
// to receive (RFC-1157 §3's UDP payload ceiling).
const MaxPayloadSize = 65507

// Socket wraps a single UDP PacketConn for the lifetime of an engine.
type Socket struct {
	conn *net.UDPConn
}

// Open binds a UDP socket on an ephemeral local port across all interfaces,
// suitable for an engine that talks to many remote targets from one local
// endpoint.
func Open() (*Socket, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{})
	if err != nil {
		return nil, errors.Wrap(err, "open udp socket")
	}
	_ = conn.SetReadBuffer(TargetRecvBufferBytes)
	return &Socket{conn: conn}, nil
}

// Close releases the underlying socket. Any blocked ReceiveFrom calls
// return an error.
func (s *Socket) Close() error {
	return s.conn.Close()
}

// LocalAddr returns the socket's bound local address.
func (s *Socket) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// ResolveUDPAddr converts a normalized endpoint to a *net.UDPAddr via the
// system resolver, so callers never need to special-case hostnames.
func ResolveUDPAddr(e hostaddr.Endpoint) (*net.UDPAddr, error) {
	addr, err := net.ResolveUDPAddr("udp", e.String())
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", e.String())
	}
	return addr, nil
}

// SendTo writes payload to addr. Oversized payloads are rejected before any
// syscall, covering the case where a caller builds the payload outside the
// pdu package's own ceiling check.
func (s *Socket) SendTo(payload []byte, addr *net.UDPAddr) error {
	if len(payload) > MaxPayloadSize {
		return ErrPayloadTooLarge
	}
	_, err := s.conn.WriteToUDP(payload, addr)
	return errors.Wrapf(err, "send to %s", addr)
}

// ReceiveFrom blocks until a datagram arrives, buf is too small for one, or
// deadline passes, whichever comes first. A zero deadline means no
// deadline.
func (s *Socket) ReceiveFrom(buf []byte, deadline time.Time) (n int, addr *net.UDPAddr, err error) {
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return 0, nil, errors.Wrap(err, "set read deadline")
	}
	n, addr, err = s.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, nil, err
	}
	return n, addr, nil
}
