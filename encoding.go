package oss

import (
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

const (
	digestDomain = "oss/message-digest/v1"

	// extra digest bits squeezed beyond the modulus length, so reducing mod n leaves a negligible bias
	digestExtraBits = 64
)

// MessageDigest maps arbitrary bytes onto a residue mod n with SHAKE256, for signing byte strings rather than
// integers
func MessageDigest(pub *PublicKey, data []byte) *big.Int {
	h := sha3.NewShake256()
	h.Write([]byte(digestDomain))
	h.Write(data)

	out := make([]byte, (pub.n.BitLen()+digestExtraBits+7)/8)
	_, _ = h.Read(out)

	digest := new(big.Int).SetBytes(out)
	return digest.Mod(digest, pub.n)
}

// maximum number of secret bytes that fit under the modulus once padded
func secretMaxSize(pub *PublicKey) int {
	// the padded block is (bits-1)/8 bytes, so it is strictly below n; one 0x01 lead byte and the 0x00
	// separator come off the top
	return (pub.n.BitLen()-1)/8 - 2
}

// EncodeSecret turns secret bytes into an integer below n that DecodeSecret can reverse exactly, leading zero
// bytes included. The block is 0x01 ... 0x01 0x00 || secret, so it is never zero
func EncodeSecret(pub *PublicKey, secret []byte) (*big.Int, error) {
	maxsize := secretMaxSize(pub)
	if len(secret) > maxsize {
		return nil, fmt.Errorf("%w: secret of %d bytes exceeds %d bytes for a %d-bit modulus", ErrMessageTooLong, len(secret), maxsize, pub.Size())
	}
	return new(big.Int).SetBytes(pad(secret, maxsize+2)), nil
}

// DecodeSecret reverses EncodeSecret
func DecodeSecret(encoded *big.Int) ([]byte, error) {
	secret, ok := unPad(encoded.Bytes())
	if !ok {
		return nil, fmt.Errorf("%w: value is not an encoded secret", ErrInvalidParameter)
	}
	return secret, nil
}

// pad pads msg to targetlen bytes. Callers guarantee len(msg) <= targetlen-2
func pad(msg []byte, targetlen int) []byte {
	padded := make([]byte, targetlen)
	sep := targetlen - 1 - len(msg)
	for i := 0; i < sep; i++ {
		padded[i] = 1
	}
	padded[sep] = 0
	copy(padded[sep+1:], msg)
	return padded
}

// unPad undoes pad, reporting false if the block is not well formed
func unPad(block []byte) ([]byte, bool) {
	if len(block) == 0 || block[0] != 1 {
		return nil, false
	}
	for i := 1; i < len(block); i++ {
		switch block[i] {
		case 0:
			return block[i+1:], true
		case 1:
		default:
			return nil, false
		}
	}
	return nil, false
}
