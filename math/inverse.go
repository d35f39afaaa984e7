package math

import (
	"errors"
	"math/big"
)

// ErrNoInverse is returned when a value shares a factor with the modulus
var ErrNoInverse = errors.New("no modular inverse exists")

// ModInverse returns x in [0, n) such that a * x ≡ 1 (mod n)
//
// big.Int.ModInverse signals failure by returning nil, which is easy to miss in a chain of operations,
// so callers get an explicit error instead
func ModInverse(a *big.Int, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrNoInverse
	}

	aModN := new(big.Int).Mod(a, n)
	inverse := new(big.Int).ModInverse(aModN, n)
	if inverse == nil {
		return nil, ErrNoInverse
	}
	return inverse, nil
}

// Half returns the inverse of 2 mod n, which exists for every odd n
func Half(n *big.Int) (*big.Int, error) {
	return ModInverse(bigTwo, n)
}
