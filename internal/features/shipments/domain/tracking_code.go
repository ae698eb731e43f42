package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// NewTrackingCode produces a human-readable public identifier of the form
// CC-<YYYYMMDD UTC>-<4 digits>. Attempt 0 derives the suffix from the low
// digits of the current epoch second, keeping compatibility with codes
// issued historically. This scheme can collide within the same second, so
// later attempts (after a unique-constrained insert conflict) use a random
// suffix instead.
func NewTrackingCode(now time.Time, attempt int) string {
	utc := now.UTC()
	suffix := utc.Unix() % 10000
	if attempt > 0 {
		if n, err := rand.Int(rand.Reader, big.NewInt(10000)); err == nil {
			suffix = n.Int64()
		}
	}
	return fmt.Sprintf("CC-%s-%04d", utc.Format("20060102"), suffix)
}
