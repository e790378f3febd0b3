//go:build !tinygo

package hal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type discardLogger struct{}

func (discardLogger) WriteLineString(string) {}
func (discardLogger) WriteLineBytes([]byte)  {}

func TestSerialMissingDeviceNotReady(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttyGENIE")
	s := newHostSerial(SerialConfig{Path: path}, discardLogger{})

	if _, err := s.Read(make([]byte, 8)); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Read err = %v, want ErrNotReady", err)
	}
	// Within the backoff window the device is not probed again.
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write([]byte{0x06}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Write err = %v, want ErrNotReady", err)
	}
}

func TestSerialReadsPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ttyGENIE")
	if err := os.WriteFile(path, []byte{0x07, 0x0D, 0x00, 0x00, 0x35, 0x3F}, 0o600); err != nil {
		t.Fatal(err)
	}
	s := newHostSerial(SerialConfig{Path: path}, discardLogger{})

	buf := make([]byte, 16)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 6 || buf[0] != 0x07 {
		t.Fatalf("Read = % X", buf[:n])
	}
}

func TestWaitForDevice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ttyUSB0")

	done := make(chan error, 1)
	go func() { done <- waitForDevice(path) }()

	select {
	case err := <-done:
		t.Fatalf("waitForDevice returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("waitForDevice: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waitForDevice did not notice the new node")
	}
}
