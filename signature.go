package oss

import (
	"crypto/rand"
	"io"
	"math/big"

	ossmath "github.com/bastionzero/oss/math"
)

// Signature is an OSS signature pair. Both values lie in [0, n)
type Signature struct {
	S1 *big.Int
	S2 *big.Int
}

// Equal reports whether sig and other hold the same pair
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	return sig.S1.Cmp(other.S1) == 0 && sig.S2.Cmp(other.S2) == 0
}

// maxBlindingAttempts caps the search for a blinding value r coprime to n. For prime n every draw
// succeeds, so this only bites with a caller-supplied composite modulus
const maxBlindingAttempts = 1000

// SignatureScheme signs integer messages with one KeyMaterial. It keeps no state between calls
type SignatureScheme struct {
	key    *KeyMaterial
	random io.Reader
}

// NewSignatureScheme binds a signature scheme to key. A nil random falls back to crypto/rand
func NewSignatureScheme(key *KeyMaterial, random io.Reader) *SignatureScheme {
	if random == nil {
		random = rand.Reader
	}
	return &SignatureScheme{key: key, random: random}
}

// PublicKey returns the key verifiers need
func (s *SignatureScheme) PublicKey() *PublicKey {
	return s.key.Public()
}

// Sign produces a randomized signature on message.
//
// The blinding value r is returned for diagnostics only. It is not part of the signature and Verify never needs it
func (s *SignatureScheme) Sign(message *big.Int) (sig *Signature, r *big.Int, err error) {
	if message == nil {
		return nil, nil, errorf("Sign", ErrInvalidParameter, "nil message")
	}

	r, _, err = ossmath.RandomCoprime(s.random, s.key.n, maxBlindingAttempts)
	if err != nil {
		return nil, nil, opError("Sign", searchError(err))
	}

	sig, err = signTransform(s.key, message, r)
	if err != nil {
		return nil, nil, opError("Sign", err)
	}
	return sig, r, nil
}

// SignBytes signs the digest of data produced by MessageDigest
func (s *SignatureScheme) SignBytes(data []byte) (*Signature, error) {
	sig, _, err := s.Sign(MessageDigest(s.key.Public(), data))
	return sig, err
}

// Verify checks sig on message against the scheme's own public key
func (s *SignatureScheme) Verify(message *big.Int, sig *Signature) bool {
	return Verify(s.key.Public(), message, sig)
}

// Verify accepts iff S1^2 + h*S2^2 ≡ message (mod n). Messages at or above n count by their residue.
//
// It never fails: anything malformed is simply rejected
func Verify(pub *PublicKey, message *big.Int, sig *Signature) bool {
	return quadraticFormHolds(pub, message, sig)
}

// VerifyBytes checks a signature made with SignBytes
func VerifyBytes(pub *PublicKey, data []byte, sig *Signature) bool {
	if pub == nil || pub.n == nil {
		return false
	}
	return Verify(pub, MessageDigest(pub, data), sig)
}
