// Package planid generates the short public codes for savings plans.
//
// Codes are not guaranteed to be unique, the database enforces uniqueness
// at commit time and callers retry on conflict.
package planid

import (
	"fmt"
	"math/rand/v2"
)

// Width is the number of digits in a plan code.
const Width = 4

// Space is the number of possible plan codes.
const Space = 10000

// New returns a random, zero-padded numeric plan code.
func New() string {
	return fmt.Sprintf("%0*d", Width, rand.IntN(Space))
}
