package math

import (
	"math/big"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// CongruentModN checks that N divides (a - b)
func CongruentModN(a *big.Int, b *big.Int, N *big.Int) bool {
	aModN := new(big.Int).Mod(a, N)
	bModN := new(big.Int).Mod(b, N)

	return aModN.Cmp(bModN) == 0
}

// Coprime reports whether gcd(a, n) = 1. Negative a is taken mod n first, since GCD only accepts
// non-negative operands
func Coprime(a *big.Int, n *big.Int) bool {
	return GCD(a, n).Cmp(bigOne) == 0
}

// GCD returns gcd(a mod n, n)
func GCD(a *big.Int, n *big.Int) *big.Int {
	aModN := new(big.Int).Mod(a, n)
	return new(big.Int).GCD(nil, nil, aModN, n)
}
