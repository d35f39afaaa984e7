package oss

import (
	"io"
	"math/big"

	ossmath "github.com/bastionzero/oss/math"
)

// DefaultPrimalityRounds is the number of Miller-Rabin rounds used when a caller passes rounds <= 0.
// A composite survives all of them with probability at most 4^-5
const DefaultPrimalityRounds = 5

var bigThree = big.NewInt(3)

// IsProbablePrime runs the Miller-Rabin test on candidate with rounds random bases drawn from random.
//
// A true result means "probably prime", never a certificate. The error is non-nil only when random fails.
func IsProbablePrime(random io.Reader, candidate *big.Int, rounds int) (bool, error) {
	if rounds <= 0 {
		rounds = DefaultPrimalityRounds
	}

	switch {
	case candidate.Cmp(bigTwo) < 0:
		return false, nil
	case candidate.Cmp(bigTwo) == 0 || candidate.Cmp(bigThree) == 0:
		return true, nil
	case candidate.Bit(0) == 0:
		return false, nil
	}

	// candidate - 1 = d * 2^r, d odd
	cMinusOne := new(big.Int).Sub(candidate, bigOne)
	r := cMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(cMinusOne, r)

	// bases are drawn from [2, candidate - 2]
	cMinusTwo := new(big.Int).Sub(candidate, bigTwo)

	x := new(big.Int)
WitnessLoop:
	for i := 0; i < rounds; i++ {
		a, err := ossmath.RandomInRange(random, bigTwo, cMinusTwo)
		if err != nil {
			return false, err
		}

		x.Exp(a, d, candidate)
		if x.Cmp(bigOne) == 0 || x.Cmp(cMinusOne) == 0 {
			continue
		}

		for j := uint(1); j < r; j++ {
			x.Mul(x, x)
			x.Mod(x, candidate)
			if x.Cmp(cMinusOne) == 0 {
				continue WitnessLoop
			}
		}

		// a is a witness to candidate being composite
		return false, nil
	}

	return true, nil
}
