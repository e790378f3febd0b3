// Command geniedump decodes a byte stream captured from a ViSi-Genie display, or
// encodes a key script as the REPORT_EVENT frames the display would send.
//
//	geniedump -in capture.bin
//	geniedump -keys "12+30=" -out presses.bin
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"geniecalc/calcos/calc"
	"geniecalc/calcos/genie"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Captured stream to decode (default stdin).")
		outPath = flag.String("out", "", "Where to write encoded frames (default stdout).")
		keys    = flag.String("keys", "", "Encode this key script instead of decoding.")
		form    = flag.Int("form", -1, "With -keys, append a form button press (0 calculator, 1 clock).")
	)
	flag.Parse()

	if *keys != "" || *form >= 0 {
		if err := encode(*outPath, *keys, *form); err != nil {
			fatalf("encode: %v", err)
		}
		return
	}
	if err := decode(*inPath, os.Stdout); err != nil {
		fatalf("decode: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func encode(outPath, script string, form int) error {
	ks, err := calc.ParseKeys(script)
	if err != nil {
		return err
	}

	var frames []byte
	for _, k := range ks {
		frames = genie.AppendReportEvent(frames, genie.ObjKeyboard, 0, uint16(k))
	}
	if form >= 0 {
		frames = genie.AppendReportEvent(frames, genie.ObjWinButton, byte(form), 0)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	_, err = out.Write(frames)
	return err
}

func decode(inPath string, w io.Writer) error {
	var in io.Reader = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return dump(bufio.NewReader(in), w)
}

// dump prints one line per reply or decode error.
func dump(r io.Reader, w io.Writer) error {
	var dec genie.Decoder
	var offset int
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			dec.Feed(buf[:n])
			for {
				before := dec.Buffered()
				rep, ok, derr := dec.Next()
				at := offset
				offset += before - dec.Buffered()
				if derr != nil {
					fmt.Fprintf(w, "%6d  error: %v\n", at, derr)
					continue
				}
				if !ok {
					break
				}
				fmt.Fprintf(w, "%6d  %s\n", at, describe(rep))
			}
		}
		if errors.Is(err, io.EOF) {
			if left := dec.Buffered(); left > 0 {
				fmt.Fprintf(w, "%6d  truncated: %d bytes\n", offset, left)
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func describe(r genie.Reply) string {
	if r.Cmd != genie.CmdReportEvent {
		return r.String()
	}
	switch r.Object {
	case genie.ObjKeyboard:
		return fmt.Sprintf("key %s (keyboard %d)", calc.Key(r.Data), r.Index)
	case genie.ObjWinButton:
		return fmt.Sprintf("button %d", r.Index)
	}
	return "event " + r.String()
}
