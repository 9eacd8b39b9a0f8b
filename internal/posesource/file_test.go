package posesource

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePoseLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poses.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSourceReadsFrames(t *testing.T) {
	path := writePoseLog(t, `{"ts": 0.0, "keypoints": {"neck": [412, 220]}}

{"ts": 0.033, "keypoints": {"neck": null}}
`)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	f, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !f.Keypoints["neck"].Valid || f.Keypoints["neck"].Y != 220 {
		t.Errorf("unexpected first frame: %+v", f)
	}

	// Blank lines are skipped, not delivered as ticks.
	f, err = src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if f.Keypoints["neck"].Valid {
		t.Errorf("second frame neck should be undetected: %+v", f)
	}

	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF at end of log, got %v", err)
	}
}

func TestFileSourceReportsLineNumber(t *testing.T) {
	path := writePoseLog(t, `{"ts": 0.0, "keypoints": {"neck": [412, 220]}}
not json
`)

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	if _, err := src.Next(); err != nil {
		t.Fatal(err)
	}
	_, err = src.Next()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if got := err.Error(); !strings.HasPrefix(got, "line 2:") {
		t.Errorf("error should name line 2, got %q", got)
	}
}

func TestOpenDispatch(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("empty spec must fail")
	}

	path := writePoseLog(t, "")
	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := src.(*FileSource); !ok {
		t.Errorf("plain path should open a FileSource, got %T", src)
	}
	src.Close()

	udp, err := Open("udp:127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := udp.(*UDPSource); !ok {
		t.Errorf("udp spec should open a UDPSource, got %T", udp)
	}
	udp.Close()
}
