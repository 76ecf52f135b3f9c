// Package invoice generates shipment invoice identifiers.
package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

var defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// NumberAt formats an invoice number as YYYY-MM-NNNNN from the supplied
// timestamp, with NNNNN drawn uniformly from [10000, 99999] using rng.
// Uniqueness is best effort: collisions are accepted and never checked for.
func NumberAt(now time.Time, rng *rand.Rand) string {
	random := 10000 + rng.Intn(90000)
	return fmt.Sprintf("%04d-%02d-%05d", now.Year(), int(now.Month()), random)
}

// Number is NumberAt over the shared package-level source.
func Number(now time.Time) string {
	return NumberAt(now, defaultRand)
}
