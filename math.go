package oss

import (
	"math/big"

	ossmath "github.com/bastionzero/oss/math"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// signTransform is the algebra shared by signing and hiding. With t = m/r (mod n):
//
//	S1 <- 1/2 * (t + r)     (mod n)
//	S2 <- k * 1/2 * (t - r) (mod n)
//
// Since h = -k^-2, S1^2 + h*S2^2 = ((t + r)^2 - (t - r)^2) / 4 = t*r = m, and S1 - k^-1*S2 = r.
// r must be coprime to n.
func signTransform(key *KeyMaterial, m *big.Int, r *big.Int) (*Signature, error) {
	inv2, err := ossmath.Half(key.n)
	if err != nil {
		return nil, err
	}
	invR, err := ossmath.ModInverse(r, key.n)
	if err != nil {
		return nil, err
	}

	// t <- m * r^-1 (mod n)
	t := new(big.Int).Mul(m, invR)
	t.Mod(t, key.n)

	// S1 <- inv2 * (t + r) (mod n)
	s1 := new(big.Int).Add(t, r)
	s1.Mul(s1, inv2)
	s1.Mod(s1, key.n)

	// S2 <- k * inv2 * (t - r) (mod n)
	s2 := new(big.Int).Sub(t, r)
	s2.Mul(s2, inv2)
	s2.Mul(s2, key.k)
	s2.Mod(s2, key.n)

	return &Signature{S1: s1, S2: s2}, nil
}

// revealTransform inverts signTransform's blinding value: r <- S1 - k^-1 * S2 (mod n)
func revealTransform(key *KeyMaterial, sig *Signature) *big.Int {
	r := new(big.Int).Mul(key.kInv, sig.S2)
	r.Sub(sig.S1, r)
	return r.Mod(r, key.n)
}

// quadraticFormHolds checks S1^2 + h * S2^2 ≡ m (mod n).
//
// Verification must always come back with an answer, so malformed input of any kind is a rejection
func quadraticFormHolds(pub *PublicKey, m *big.Int, sig *Signature) (ok bool) {
	if pub == nil || pub.n == nil || pub.h == nil || m == nil || sig == nil || sig.S1 == nil || sig.S2 == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	s1Squared := new(big.Int).Exp(sig.S1, bigTwo, pub.n)
	s2Squared := new(big.Int).Exp(sig.S2, bigTwo, pub.n)

	// lhs <- S1^2 + h * S2^2
	lhs := new(big.Int).Mul(pub.h, s2Squared)
	lhs.Add(lhs, s1Squared)

	return ossmath.CongruentModN(lhs, m, pub.n)
}
