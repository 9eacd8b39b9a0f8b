package posesource

import (
	"net"
	"testing"
)

func TestUDPSourceReceivesFrame(t *testing.T) {
	src, err := NewUDPSource("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	conn, err := net.Dial("udp", src.conn.LocalAddr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"ts": 1.0, "keypoints": {"neck": [412, 220]}}`)); err != nil {
		t.Fatal(err)
	}

	f, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if f.TS != 1.0 || f.Keypoints["neck"].Y != 220 {
		t.Errorf("unexpected frame: %+v", f)
	}
}

func TestUDPSourceCloseUnblocksNext(t *testing.T) {
	src, err := NewUDPSource("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := src.Next()
		done <- err
	}()

	src.Close()
	if err := <-done; err == nil {
		t.Error("Next should return an error once the socket is closed")
	}
}
