// Package broadcast sends composite results to network listeners as single
// UDP datagrams in the pipe-delimited EULER framing.
package broadcast

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"

	"github.com/eulerlabs/euler/internal/composite"
)

// Sender writes one datagram per result to a fixed host:port.
type Sender struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

// NewSender resolves the target and opens an unbound UDP socket for
// sending.
func NewSender(host string, port int) (*Sender, error) {
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("resolve broadcast target %s:%d: %w", host, port, err)
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("open broadcast socket: %w", err)
	}
	log.Info().Str("target", addr.String()).Msg("result broadcaster ready")
	return &Sender{conn: conn, addr: addr}, nil
}

// Send transmits the result's wire framing. Failures are logged, not
// propagated: broadcasting is best-effort and never fails a cycle.
func (s *Sender) Send(result *composite.Result) {
	payload := []byte(result.Wire())
	if _, err := s.conn.WriteToUDP(payload, s.addr); err != nil {
		log.Warn().Err(err).Str("target", s.addr.String()).Msg("broadcast send failed")
		return
	}
	log.Debug().Str("payload", string(payload)).Msg("result broadcast")
}

// Close releases the socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}
