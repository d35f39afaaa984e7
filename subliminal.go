package oss

import (
	"math/big"

	ossmath "github.com/bastionzero/oss/math"
)

// Envelope is what travels in the clear over a subliminal channel: an ordinary-looking signature on Cover.
// Only the holder of k can pull the hidden secret back out of it
type Envelope struct {
	Signature
	Cover *big.Int
}

// SubliminalScheme hides secrets inside cover signatures made with one KeyMaterial
//
// Unlike signing, hiding draws no randomness: the secret takes the place of the random blinding value
type SubliminalScheme struct {
	key *KeyMaterial
}

// NewSubliminalScheme binds a subliminal scheme to key
func NewSubliminalScheme(key *KeyMaterial) *SubliminalScheme {
	return &SubliminalScheme{key: key}
}

// PublicKey returns the key third parties use to check cover messages
func (s *SubliminalScheme) PublicKey() *PublicKey {
	return s.key.Public()
}

// Hide signs cover using secret as the blinding value. Both must be coprime to n; otherwise the error is a
// *NotCoprimeError naming the offending operand
func (s *SubliminalScheme) Hide(secret *big.Int, cover *big.Int) (*Envelope, error) {
	if secret == nil || cover == nil {
		return nil, errorf("Hide", ErrInvalidParameter, "nil secret or cover")
	}
	if err := s.checkCoprime("secret", secret); err != nil {
		return nil, opError("Hide", err)
	}
	if err := s.checkCoprime("cover", cover); err != nil {
		return nil, opError("Hide", err)
	}

	// the transform works on residues, so the secret that comes back out of Reveal is secret mod n
	r := new(big.Int).Mod(secret, s.key.n)
	sig, err := signTransform(s.key, cover, r)
	if err != nil {
		return nil, opError("Hide", err)
	}

	return &Envelope{
		Signature: *sig,
		Cover:     new(big.Int).Set(cover),
	}, nil
}

// HideBytes encodes secret with EncodeSecret and hides it under cover
func (s *SubliminalScheme) HideBytes(secret []byte, cover *big.Int) (*Envelope, error) {
	encoded, err := EncodeSecret(s.key.Public(), secret)
	if err != nil {
		return nil, opError("HideBytes", err)
	}
	return s.Hide(encoded, cover)
}

// VerifyCover checks env against the scheme's own public key
func (s *SubliminalScheme) VerifyCover(env *Envelope) bool {
	if env == nil {
		return false
	}
	return VerifyCover(s.key.Public(), env.Cover, &env.Signature)
}

// VerifyCover is the third-party check of a subliminal envelope. It is the signature predicate with the cover as
// the message and needs nothing beyond the public key
func VerifyCover(pub *PublicKey, cover *big.Int, sig *Signature) bool {
	return quadraticFormHolds(pub, cover, sig)
}

// Reveal recovers the hidden secret: secret = S1 - k^-1 * S2 (mod n)
func (s *SubliminalScheme) Reveal(sig *Signature) *big.Int {
	if sig == nil || sig.S1 == nil || sig.S2 == nil {
		return nil
	}
	return revealTransform(s.key, sig)
}

// RevealBytes reverses HideBytes
func (s *SubliminalScheme) RevealBytes(sig *Signature) ([]byte, error) {
	revealed := s.Reveal(sig)
	if revealed == nil {
		return nil, errorf("RevealBytes", ErrInvalidParameter, "nil signature")
	}
	secret, err := DecodeSecret(revealed)
	if err != nil {
		return nil, opError("RevealBytes", err)
	}
	return secret, nil
}

func (s *SubliminalScheme) checkCoprime(operand string, x *big.Int) error {
	if ossmath.Coprime(x, s.key.n) {
		return nil
	}
	return &NotCoprimeError{
		Operand: operand,
		GCD:     ossmath.GCD(x, s.key.n),
	}
}
