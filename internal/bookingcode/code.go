// Package bookingcode produces the short numeric codes handed to a
// mentee when a seat is reserved. Codes are not secrets; uniqueness
// among live reservations is the caller's job.
package bookingcode

import "math/rand"

const (
	// Min and Max bound the closed code range. Only 900 codes exist,
	// so callers must retry against the set of live codes.
	Min = 100
	Max = 999
)

// Generate returns a code in [Min, Max]. Pure apart from the global
// math/rand source; not cryptographically secure.
func Generate() int {
	return rand.Intn(Max-Min+1) + Min
}
