// Package posesource acquires pose frames from the external estimator.
// Frames arrive as JSON lines over a file, stdin, a serial port, or as
// one JSON object per UDP datagram. The source delivers frames in
// arrival order; the pipeline relies on that ordering.
package posesource

import (
	"fmt"
	"strings"

	"github.com/banshee-data/repcount/internal/pose"
)

// Source yields pose frames one at a time. Next returns io.EOF once the
// stream is exhausted; any other error is a transport or protocol
// failure.
type Source interface {
	Next() (pose.Frame, error)
	Close() error
}

// Open dispatches on the source spec:
//
//	udp:<addr>      listen for one JSON frame per datagram
//	serial:<dev>    JSON lines from a serial port at the default baud rate
//	-               JSON lines from stdin
//	<path>          JSON lines from a file
func Open(spec string) (Source, error) {
	switch {
	case strings.HasPrefix(spec, "udp:"):
		return NewUDPSource(strings.TrimPrefix(spec, "udp:"))
	case strings.HasPrefix(spec, "serial:"):
		return NewSerialSource(strings.TrimPrefix(spec, "serial:"), DefaultBaudRate)
	case spec == "":
		return nil, fmt.Errorf("empty pose source spec")
	default:
		return NewFileSource(spec)
	}
}
