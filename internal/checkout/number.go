package checkout

import (
	"fmt"
	"math/rand/v2"
)

// NewOrderNumber generates a customer-facing order code: the configured
// literal prefix followed by six random digits. Uniqueness is not enforced;
// only one order is retained at a time, so a collision with a past number
// is harmless. The order record's uuid is the real identifier.
func NewOrderNumber(prefix string) string {
	return fmt.Sprintf("%s%06d", prefix, rand.IntN(1_000_000))
}
