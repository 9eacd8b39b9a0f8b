package posesource

import (
	"bufio"
	"fmt"
	"io"

	"go.bug.st/serial"

	"github.com/banshee-data/repcount/internal/pose"
)

// DefaultBaudRate matches the estimator boards that stream pose JSON
// over UART.
const DefaultBaudRate = 115200

// SerialSource reads JSON-line pose frames from a serial port. Used
// when the pose estimator runs on attached hardware and streams its
// results over UART rather than the network.
type SerialSource struct {
	port    serial.Port
	scanner *bufio.Scanner
	line    int
}

// NewSerialSource opens the named port at the given baud rate.
func NewSerialSource(portName string, baudRate int) (*SerialSource, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %q: %w", portName, err)
	}

	scanner := bufio.NewScanner(port)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &SerialSource{port: port, scanner: scanner}, nil
}

// Next blocks for the next line and parses it as a pose frame.
func (s *SerialSource) Next() (pose.Frame, error) {
	for s.scanner.Scan() {
		s.line++
		data := s.scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		f, err := pose.ParseFrame(data)
		if err != nil {
			return pose.Frame{}, fmt.Errorf("serial line %d: %w", s.line, err)
		}
		return f, nil
	}
	if err := s.scanner.Err(); err != nil {
		return pose.Frame{}, err
	}
	return pose.Frame{}, io.EOF
}

// Close closes the serial port; a blocked Next returns with an error.
func (s *SerialSource) Close() error {
	return s.port.Close()
}
