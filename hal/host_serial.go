//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSerialPath is the UART the display module is wired to on a Raspberry Pi.
const DefaultSerialPath = "/dev/ttyAMA0"

// DefaultBaud is the rate the display module is configured for.
const DefaultBaud = 115200

// reopenBackoff limits how often a missing device is probed when not waiting on it.
const reopenBackoff = time.Second

// SerialConfig selects the host serial device.
type SerialConfig struct {
	Path string
	Baud int
	// Wait blocks opens until the device node appears instead of failing with ErrNotReady.
	Wait bool
}

// hostSerial opens the device lazily and reopens it after a read or write error,
// so unplugging a USB adapter does not end the session.
type hostSerial struct {
	cfg SerialConfig
	log Logger

	mu       sync.Mutex
	f        *os.File
	lastFail time.Time

	wmu sync.Mutex
}

func newHostSerial(cfg SerialConfig, log Logger) *hostSerial {
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}
	return &hostSerial{cfg: cfg, log: log}
}

func (s *hostSerial) Read(p []byte) (int, error) {
	f, err := s.file()
	if err != nil {
		return 0, err
	}
	n, err := f.Read(p)
	if err != nil {
		s.drop(f, err)
		if n > 0 {
			return n, nil
		}
		return 0, fmt.Errorf("serial %s: %w", s.cfg.Path, err)
	}
	return n, nil
}

func (s *hostSerial) Write(p []byte) (int, error) {
	f, err := s.file()
	if err != nil {
		return 0, err
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	n, err := f.Write(p)
	if err != nil {
		s.drop(f, err)
		return n, fmt.Errorf("serial %s: %w", s.cfg.Path, err)
	}
	return n, nil
}

func (s *hostSerial) file() (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f != nil {
		return s.f, nil
	}

	if s.cfg.Wait {
		if err := waitForDevice(s.cfg.Path); err != nil {
			return nil, fmt.Errorf("serial %s: %w", s.cfg.Path, err)
		}
	} else if !s.lastFail.IsZero() && time.Since(s.lastFail) < reopenBackoff {
		return nil, ErrNotReady
	}

	f, err := openSerial(s.cfg.Path, s.cfg.Baud)
	if err != nil {
		s.lastFail = time.Now()
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("serial %s: %w", s.cfg.Path, ErrNotReady)
		}
		return nil, fmt.Errorf("serial %s: %w", s.cfg.Path, err)
	}
	s.lastFail = time.Time{}
	s.f = f
	s.log.WriteLineString(fmt.Sprintf("serial: opened %s at %d baud", s.cfg.Path, s.cfg.Baud))
	return f, nil
}

func (s *hostSerial) drop(f *os.File, cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f != f {
		return
	}
	_ = f.Close()
	s.f = nil
	s.lastFail = time.Now()
	s.log.WriteLineString(fmt.Sprintf("serial: closed %s: %v", s.cfg.Path, cause))
}

// waitForDevice blocks until path exists, watching its parent directory for the
// device node to be created.
func waitForDevice(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// The node may have appeared between the first Stat and Add.
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	want := filepath.Clean(path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return ErrNotReady
			}
			if filepath.Clean(ev.Name) == want && ev.Has(fsnotify.Create) {
				return nil
			}
		case err, ok := <-w.Errors:
			if !ok {
				return ErrNotReady
			}
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
}
