package artifacts

import (
	"archive/tar"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTar(t *testing.T, entries [][2]string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		name, body := e[0], e[1]
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return &buf
}

func TestWalkTarEmitsTextEntries(t *testing.T) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	write := func(name, body string) {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	write("app/config.env", "TOKEN=abc\n")
	write("/etc/secrets.txt", "password=hunter22\n")
	write("usr/lib/libfoo.so", "not scanned")
	write("app/logo.png", "not scanned either")
	write("bin/tool", "ELF\x00\x00\x00binary")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "app/dir", Typeflag: tar.TypeDir}))
	require.NoError(t, tw.Close())

	var decompressed int64
	var entries int
	got := map[string]string{}
	err := walkTar("img::sha256:abc", Limits{}, &decompressed, &entries, time.Time{}, func(path string, data []byte) {
		got[path] = string(data)
	}, &buf)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, "TOKEN=abc\n", got["img::sha256:abc/app/config.env"])
	// Leading slashes are stripped before prefixing.
	assert.Contains(t, got, "img::sha256:abc/etc/secrets.txt")
	assert.Equal(t, 2, entries)
}

func TestWalkTarMaxEntries(t *testing.T) {
	buf := buildTar(t, [][2]string{
		{"a.txt", "one"},
		{"b.txt", "two"},
		{"c.txt", "three"},
	})
	var decompressed int64
	var entries int
	count := 0
	err := walkTar("img", Limits{MaxEntries: 1}, &decompressed, &entries, time.Time{}, func(string, []byte) { count++ }, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWalkTarByteBudget(t *testing.T) {
	big := bytes.Repeat([]byte{'x'}, 4096)
	buf := buildTar(t, [][2]string{
		{"big.txt", string(big)},
		{"more.txt", "never reached"},
	})
	var decompressed int64
	var entries int
	count := 0
	err := walkTar("img", Limits{MaxBytes: 1024}, &decompressed, &entries, time.Time{}, func(string, []byte) { count++ }, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.GreaterOrEqual(t, decompressed, int64(1024))
}

func TestWalkTarDeadline(t *testing.T) {
	buf := buildTar(t, [][2]string{{"a.txt", "one"}})
	var decompressed int64
	var entries int
	count := 0
	deadline := time.Now().Add(-time.Second)
	err := walkTar("img", Limits{}, &decompressed, &entries, deadline, func(string, []byte) { count++ }, buf)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLooksBinary(t *testing.T) {
	assert.False(t, looksBinary([]byte("plain text\n")))
	assert.True(t, looksBinary([]byte("abc\x00def")))

	// NUL past the probe window does not flag.
	tail := append(bytes.Repeat([]byte{'a'}, 900), 0)
	assert.False(t, looksBinary(tail))
}

func TestNonTextName(t *testing.T) {
	for _, name := range []string{"logo.PNG", "lib/libz.so", "dist.tar", "archive.gz"} {
		assert.True(t, nonTextName(name), name)
	}
	for _, name := range []string{"main.go", "Dockerfile", "config.env"} {
		assert.False(t, nonTextName(name), name)
	}
}

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	assert.Positive(t, l.MaxBytes)
	assert.Positive(t, l.MaxEntries)
	assert.Positive(t, l.TimeBudget)
}
