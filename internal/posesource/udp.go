package posesource

import (
	"fmt"
	"net"

	"github.com/banshee-data/repcount/internal/pose"
)

// MaxDatagramSize bounds a single pose frame datagram.
const MaxDatagramSize = 64 * 1024

// UDPSource listens on a UDP address and treats each datagram as one
// JSON pose frame. There is no end-of-stream on UDP; Next blocks until
// a frame arrives or the source is closed.
type UDPSource struct {
	conn *net.UDPConn
	buf  []byte
}

// NewUDPSource binds the given listen address (e.g. ":5005").
func NewUDPSource(addr string) (*UDPSource, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve udp address %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen udp %q: %w", addr, err)
	}
	return &UDPSource{conn: conn, buf: make([]byte, MaxDatagramSize)}, nil
}

// Next blocks for the next datagram and parses it as a pose frame.
func (s *UDPSource) Next() (pose.Frame, error) {
	n, _, err := s.conn.ReadFromUDP(s.buf)
	if err != nil {
		return pose.Frame{}, err
	}
	return pose.ParseFrame(s.buf[:n])
}

// Close closes the socket; a blocked Next returns with an error.
func (s *UDPSource) Close() error {
	return s.conn.Close()
}
