// Package daily picks the shared puzzle of the day and ranks its players.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 spread evenly enough for a modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker is the part of a dictionary the daily puzzle needs.
type Picker interface {
	Len() int
	At(i int) string
}

// Target returns the date's word from dict.
func Target(dict Picker, date time.Time, salt string) (idx int, word string) {
	if dict.Len() == 0 {
		return 0, ""
	}
	idx = WordIndex(date, salt, dict.Len())
	return idx, dict.At(idx)
}
