// Package redact masks secret values for display and derives the stable
// fingerprint used for allowlisting and deduplication.
package redact

import (
	"strconv"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

const maskCap = 20

// Mask replaces a secret with a bounded-width masked form. Secrets of eight
// characters or fewer are fully replaced; longer secrets keep their first and
// last four characters with at most 20 asterisks in between. Lengths count
// runes, so multibyte secrets never produce a broken prefix or suffix.
func Mask(secret string) string {
	r := []rune(secret)
	n := len(r)
	if n <= 8 {
		return strings.Repeat("*", n)
	}
	stars := n - 8
	if stars > maskCap {
		stars = maskCap
	}
	return string(r[:4]) + strings.Repeat("*", stars) + string(r[n-4:])
}

// Fingerprint hashes the identity of a finding into a fixed-width lowercase
// hex string. It is a pure function of path, line, rule id and the unmasked
// secret; the same inputs always produce the same 16-digit string.
func Fingerprint(path string, line int, ruleID, secret string) string {
	var b strings.Builder
	b.Grow(len(path) + len(ruleID) + len(secret) + 16)
	b.WriteString(path)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(line))
	b.WriteByte(':')
	b.WriteString(ruleID)
	b.WriteByte(':')
	b.WriteString(secret)
	sum := xxhash.Sum64String(b.String())

	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
