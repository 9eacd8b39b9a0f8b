package posesource

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/repcount/internal/pose"
)

// FileSource reads JSON-line pose frames from a file or stdin.
type FileSource struct {
	f       *os.File
	scanner *bufio.Scanner
	line    int
}

// NewFileSource opens the given path, or stdin when path is "-".
func NewFileSource(path string) (*FileSource, error) {
	if path == "-" {
		return newLineSource(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pose log: %w", err)
	}
	return newLineSource(f), nil
}

func newLineSource(f *os.File) *FileSource {
	scanner := bufio.NewScanner(f)
	// Pose frames are small, but leave headroom for many-keypoint models.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &FileSource{f: f, scanner: scanner}
}

// Next returns the next frame, skipping blank lines. Returns io.EOF at
// end of stream; a line that fails to parse is a protocol error and is
// reported with its line number.
func (s *FileSource) Next() (pose.Frame, error) {
	for s.scanner.Scan() {
		s.line++
		data := s.scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		f, err := pose.ParseFrame(data)
		if err != nil {
			return pose.Frame{}, fmt.Errorf("line %d: %w", s.line, err)
		}
		return f, nil
	}
	if err := s.scanner.Err(); err != nil {
		return pose.Frame{}, err
	}
	return pose.Frame{}, io.EOF
}

// Close closes the underlying file. Stdin is left open.
func (s *FileSource) Close() error {
	if s.f == os.Stdin {
		return nil
	}
	return s.f.Close()
}
