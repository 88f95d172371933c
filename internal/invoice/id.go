package invoice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// NewID returns a human-readable invoice id of the form INV-YYYYMMDD-NNNN,
// where the date is the current UTC date and NNNN is a zero-padded integer
// drawn uniformly from [1, 9999].
//
// Uniqueness is probabilistic: two requests in the same day have a ~1/9999
// chance of drawing the same suffix. True uniqueness would need a persistence
// layer, which this service deliberately does not have — callers that require
// a hard guarantee must enforce it downstream.
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9999))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		// Degrade to a time-derived suffix rather than failing the invoice.
		n = big.NewInt(now.UnixNano() % 9999)
	}
	return fmt.Sprintf("INV-%s-%04d", now.UTC().Format("20060102"), n.Int64()+1)
}
