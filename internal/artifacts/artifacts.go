// Package artifacts streams file contents out of container images so the
// engine can scan them without extracting anything to disk.
package artifacts

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"strings"
	"time"
)

// Limits bounds how much of an image is decompressed and emitted.
type Limits struct {
	MaxBytes   int64
	MaxEntries int
	TimeBudget time.Duration
}

// DefaultLimits keeps remote image scans from running away on large layers.
func DefaultLimits() Limits {
	return Limits{
		MaxBytes:   256 << 20,
		MaxEntries: 20000,
		TimeBudget: 5 * time.Minute,
	}
}

// EmitFunc receives each text entry found inside an image layer. The path is
// virtual: "<image>::<layer-digest>/<entry path>".
type EmitFunc func(path string, data []byte)

func walkTar(prefix string, limits Limits, decompressed *int64, entries *int, deadline time.Time, emit EmitFunc, r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		if limitsExceeded(limits, *decompressed, *entries, deadline) {
			return nil
		}
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) || hdr == nil {
			return nil
		}
		if err != nil {
			return nil
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		b, readErr := readBounded(tr, limits, decompressed, deadline)
		if readErr != nil {
			continue
		}
		if looksBinary(b) || nonTextName(hdr.Name) {
			continue
		}
		emit(prefix+"/"+strings.TrimPrefix(hdr.Name, "/"), b)
		*entries++
	}
}

func readBounded(r io.Reader, limits Limits, decompressed *int64, deadline time.Time) ([]byte, error) {
	if !deadline.IsZero() && time.Now().After(deadline) {
		return nil, errors.New("time budget exceeded")
	}
	remain := int64(1 << 62)
	if limits.MaxBytes > 0 {
		remain = limits.MaxBytes - *decompressed
		if remain <= 0 {
			return nil, errors.New("byte budget exceeded")
		}
	}
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, remain)
	*decompressed += n
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf.Bytes(), nil
}

func limitsExceeded(l Limits, decompressed int64, entries int, deadline time.Time) bool {
	if l.MaxEntries > 0 && entries >= l.MaxEntries {
		return true
	}
	if l.MaxBytes > 0 && decompressed >= l.MaxBytes {
		return true
	}
	if !deadline.IsZero() && time.Now().After(deadline) {
		return true
	}
	return false
}

func looksBinary(b []byte) bool {
	n := len(b)
	if n > 800 {
		n = 800
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

func nonTextName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".pdf", ".webp", ".ico", ".gz", ".zip", ".tar", ".so", ".a", ".o"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
