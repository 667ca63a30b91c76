package redact

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMask_ShortSecretsFullyMasked(t *testing.T) {
	for _, s := range []string{"", "a", "abc", "12345678"} {
		got := Mask(s)
		if got != strings.Repeat("*", len(s)) {
			t.Errorf("Mask(%q) = %q, want %d asterisks", s, got, len(s))
		}
	}
}

func TestMask_LongSecretsKeepEdges(t *testing.T) {
	s := "ABCD123456789WXYZ" // 17 chars, interior 9
	got := Mask(s)
	want := "ABCD" + strings.Repeat("*", 9) + "WXYZ"
	if got != want {
		t.Fatalf("Mask(%q) = %q, want %q", s, got, want)
	}
}

func TestMask_InteriorCappedAt20(t *testing.T) {
	s := strings.Repeat("x", 100)
	got := Mask(s)
	if len(got) != 28 {
		t.Fatalf("masked width = %d, want 28", len(got))
	}
	if !strings.HasPrefix(got, s[:4]) || !strings.HasSuffix(got, s[96:]) {
		t.Fatalf("mask edges not verbatim: %q", got)
	}
	if strings.Count(got, "*") != 20 {
		t.Fatalf("interior asterisks = %d, want 20", strings.Count(got, "*"))
	}
}

func TestMask_MultibyteSecretsStayValidUTF8(t *testing.T) {
	s := "pässwörd-geheim-münchen"
	got := Mask(s)
	if !utf8.ValidString(got) {
		t.Fatalf("mask produced invalid UTF-8: %q", got)
	}
	if !strings.HasPrefix(got, "päss") || !strings.HasSuffix(got, "chen") {
		t.Fatalf("mask edges not the first/last four characters: %q", got)
	}
	runes := utf8.RuneCountInString(s)
	if strings.Count(got, "*") != runes-8 {
		t.Fatalf("interior asterisks = %d, want %d", strings.Count(got, "*"), runes-8)
	}

	short := "日本語トークン" // 7 runes, fully masked
	if Mask(short) != strings.Repeat("*", 7) {
		t.Fatalf("Mask(%q) = %q, want 7 asterisks", short, Mask(short))
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("src/main.go", 42, "github-token", "ghp_secret")
	b := Fingerprint("src/main.go", 42, "github-token", "ghp_secret")
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
}

func TestFingerprint_SensitiveToEveryInput(t *testing.T) {
	base := Fingerprint("a.go", 1, "r1", "s1")
	variants := []string{
		Fingerprint("b.go", 1, "r1", "s1"),
		Fingerprint("a.go", 2, "r1", "s1"),
		Fingerprint("a.go", 1, "r2", "s1"),
		Fingerprint("a.go", 1, "r1", "s2"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base fingerprint %q", i, base)
		}
	}
}

func TestFingerprint_FixedWidthLowercaseHex(t *testing.T) {
	fp := Fingerprint("deep/nested/path.yaml", 9999, "aws-secret-access-key", "wJalrXUtnFEMI")
	if len(fp) != 16 {
		t.Fatalf("fingerprint width = %d, want 16", len(fp))
	}
	for _, c := range fp {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("fingerprint %q contains non-hex rune %q", fp, c)
		}
	}
}
