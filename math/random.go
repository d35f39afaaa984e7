package math

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// ErrExhausted is returned when a bounded random search runs out of attempts
var ErrExhausted = errors.New("random search exhausted its attempts")

// RandomInRange returns a uniformly random integer in [lo, hi], inclusive
func RandomInRange(random io.Reader, lo *big.Int, hi *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) < 0 {
		return nil, fmt.Errorf("empty range [%s, %s]", lo, hi)
	}

	// width <- hi - lo + 1
	width := new(big.Int).Sub(hi, lo)
	width.Add(width, bigOne)

	r, err := rand.Int(random, width)
	if err != nil {
		return nil, err
	}
	return r.Add(r, lo), nil
}

// RandomCoprime returns a random integer in [2, n-1] that is coprime to n, along with the number of draws it took.
//
// Draws that share a factor with n are simply discarded and retried; only a failing random source or
// running past maxAttempts ends the search early
func RandomCoprime(random io.Reader, n *big.Int, maxAttempts int) (r *big.Int, attempts int, err error) {
	hi := new(big.Int).Sub(n, bigOne)
	for attempts < maxAttempts {
		attempts++

		r, err = RandomInRange(random, bigTwo, hi)
		if err != nil {
			return nil, attempts, err
		}

		if Coprime(r, n) {
			return r, attempts, nil
		}
	}

	return nil, attempts, fmt.Errorf("%w: no value coprime to the modulus after %d draws", ErrExhausted, attempts)
}
