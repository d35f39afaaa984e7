package oss

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/bastionzero/oss/logging"
	ossmath "github.com/bastionzero/oss/math"
)

// MinBits is the shortest modulus GenerateKey will produce
const MinBits = 128

// PublicKey is the public half of OSS key material: the modulus n and h = -(k^-1)^2 mod n.
// Anyone holding it can verify signatures and cover messages
type PublicKey struct {
	n *big.Int
	h *big.Int
}

// NewPublicKey builds a verification-only key from a known (n, h)
func NewPublicKey(n *big.Int, h *big.Int) (*PublicKey, error) {
	if err := checkModulus(n); err != nil {
		return nil, opError("NewPublicKey", err)
	}
	if h == nil || h.Sign() < 0 || h.Cmp(n) >= 0 {
		return nil, errorf("NewPublicKey", ErrInvalidKey, "h must lie in [0, n)")
	}

	return &PublicKey{
		n: new(big.Int).Set(n),
		h: new(big.Int).Set(h),
	}, nil
}

// N returns a copy of the public modulus
func (pub *PublicKey) N() *big.Int {
	return new(big.Int).Set(pub.n)
}

// H returns a copy of the public value h
func (pub *PublicKey) H() *big.Int {
	return new(big.Int).Set(pub.h)
}

// Size returns the bit length of the modulus
func (pub *PublicKey) Size() int {
	return pub.n.BitLen()
}

// Equal reports whether pub and other hold the same (n, h)
func (pub *PublicKey) Equal(other *PublicKey) bool {
	if pub == nil || other == nil {
		return pub == other
	}
	return pub.n.Cmp(other.n) == 0 && pub.h.Cmp(other.h) == 0
}

// KeyMaterial is the (n, k, h) triple. It is immutable once built: accessors hand out copies, so a value can be
// shared between any number of goroutines and schemes
type KeyMaterial struct {
	PublicKey
	k    *big.Int // private
	kInv *big.Int // k^-1 mod n, kept for Reveal
}

// K returns a copy of the private value k
func (key *KeyMaterial) K() *big.Int {
	return new(big.Int).Set(key.k)
}

// Public returns the public half of the key
func (key *KeyMaterial) Public() *PublicKey {
	return &PublicKey{n: key.n, h: key.h}
}

// Validate recomputes gcd(n, k) and h from scratch and checks them against the stored values
func (key *KeyMaterial) Validate() error {
	if !ossmath.Coprime(key.k, key.n) {
		return errorf("Validate", ErrInvalidKey, "gcd(n, k) != 1")
	}

	kInv, err := ossmath.ModInverse(key.k, key.n)
	if err != nil {
		return opError("Validate", err)
	}
	if deriveH(key.n, kInv).Cmp(key.h) != 0 {
		return errorf("Validate", ErrInvalidKey, "h does not match -(k^-1)^2 mod n")
	}
	return nil
}

// NewKeyMaterial builds key material from a caller-supplied modulus and private value.
//
// n is trusted to be prime; only gcd(n, k) = 1, 2 <= k < n and an odd n are enforced
func NewKeyMaterial(n *big.Int, k *big.Int) (*KeyMaterial, error) {
	if err := checkModulus(n); err != nil {
		return nil, opError("NewKeyMaterial", err)
	}
	if k == nil || k.Cmp(bigTwo) < 0 || k.Cmp(n) >= 0 {
		return nil, errorf("NewKeyMaterial", ErrInvalidKey, "k must lie in [2, n)")
	}
	if !ossmath.Coprime(k, n) {
		return nil, errorf("NewKeyMaterial", ErrInvalidKey, "gcd(n, k) != 1")
	}

	return deriveKeyMaterial(new(big.Int).Set(n), new(big.Int).Set(k))
}

// GenerateOptions bounds and instruments key generation. Zero values select the defaults
type GenerateOptions struct {
	Rounds             int            // Miller-Rabin rounds per candidate
	MaxPrimeAttempts   int            // candidates drawn before giving up on n; 0 means 100 * bits
	MaxCoprimeAttempts int            // draws of k before giving up
	Logger             logging.Logger // receives retry and progress records
}

// DefaultGenerateOptions returns the options used by GenerateKey
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Rounds:             DefaultPrimalityRounds,
		MaxCoprimeAttempts: defaultMaxCoprimeAttempts,
		Logger:             logging.New(nil),
	}
}

const (
	primeAttemptsPerBit       = 100
	defaultMaxCoprimeAttempts = 1000
)

func (opts GenerateOptions) withDefaults(bits int) GenerateOptions {
	if opts.Rounds <= 0 {
		opts.Rounds = DefaultPrimalityRounds
	}
	if opts.MaxPrimeAttempts <= 0 {
		// the density of primes near 2^bits is about 1/(bits * ln 2), and half of those are skipped by
		// forcing odd candidates, so this leaves a very wide margin
		opts.MaxPrimeAttempts = primeAttemptsPerBit * bits
	}
	if opts.MaxCoprimeAttempts <= 0 {
		opts.MaxCoprimeAttempts = defaultMaxCoprimeAttempts
	}
	if opts.Logger == nil {
		opts.Logger = logging.New(nil)
	}
	return opts
}

// GenerateKey generates fresh key material with a bits-bit probable prime modulus
func GenerateKey(random io.Reader, bits int) (*KeyMaterial, error) {
	return GenerateKeyWithOptions(random, bits, DefaultGenerateOptions())
}

// GenerateKeyWithOptions is GenerateKey with explicit retry caps, primality rounds and logger.
//
// Rejected candidates are ordinary control flow. Only running past a cap is reported, as ErrGenerationFailed
func GenerateKeyWithOptions(random io.Reader, bits int, opts GenerateOptions) (*KeyMaterial, error) {
	if bits < MinBits {
		return nil, errorf("GenerateKey", ErrInvalidParameter, "bit length %d is below the minimum of %d", bits, MinBits)
	}
	if random == nil {
		random = rand.Reader
	}
	opts = opts.withDefaults(bits)

	ctx := context.Background()
	logger := opts.Logger.With("op", "GenerateKey", "bits", bits)

	n, attempts, err := generatePrime(random, bits, opts)
	if err != nil {
		logger.Warn(ctx, "prime search stopped", "attempts", attempts, "error", err)
		return nil, opError("GenerateKey", err)
	}
	logger.Debug(ctx, "found probable prime modulus", "attempts", attempts)

	k, attempts, err := ossmath.RandomCoprime(random, n, opts.MaxCoprimeAttempts)
	if err != nil {
		logger.Warn(ctx, "private key search stopped", "attempts", attempts, "error", err)
		return nil, opError("GenerateKey", searchError(err))
	}
	logger.Debug(ctx, "selected private key", "attempts", attempts, logging.Redacted("k"))

	key, err := deriveKeyMaterial(n, k)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "generated key material", "modulus_bits", key.Size())
	return key, nil
}

// sample odd bits-bit candidates until one passes Miller-Rabin
func generatePrime(random io.Reader, bits int, opts GenerateOptions) (p *big.Int, attempts int, err error) {
	b := make([]byte, (bits+7)/8)
	// number of bits to clear from the top byte so the candidate is exactly bits long
	excess := uint(len(b)*8 - bits)

	p = new(big.Int)
	var isPrime bool
	for attempts < opts.MaxPrimeAttempts {
		attempts++

		if _, err = io.ReadFull(random, b); err != nil {
			return nil, attempts, err
		}

		b[0] &= byte(0xff >> excess)
		b[0] |= byte(0x80 >> excess)
		b[len(b)-1] |= 1

		p.SetBytes(b)
		isPrime, err = IsProbablePrime(random, p, opts.Rounds)
		if err != nil {
			return nil, attempts, err
		}
		if isPrime {
			return p, attempts, nil
		}
	}

	return nil, attempts, errorf("generatePrime", ErrGenerationFailed, "no probable prime among %d candidates", attempts)
}

// map an exhausted search from the math package onto ErrGenerationFailed
func searchError(err error) error {
	if errors.Is(err, ossmath.ErrExhausted) {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return err
}

// finish key material once gcd(n, k) = 1 is known
func deriveKeyMaterial(n *big.Int, k *big.Int) (*KeyMaterial, error) {
	kInv, err := ossmath.ModInverse(k, n)
	if err != nil {
		// coprimality was just established, so this is an invariant violation
		return nil, opError("deriveKeyMaterial", err)
	}

	return &KeyMaterial{
		PublicKey: PublicKey{n: n, h: deriveH(n, kInv)},
		k:         k,
		kInv:      kInv,
	}, nil
}

// h <- -(kInv^2) mod n, normalized into [0, n)
func deriveH(n *big.Int, kInv *big.Int) *big.Int {
	h := new(big.Int).Mul(kInv, kInv)
	h.Neg(h)
	return h.Mod(h, n)
}

// the modulus must be odd (so 2 is invertible) and leave room for k in [2, n)
func checkModulus(n *big.Int) error {
	if n == nil || n.Cmp(bigThree) <= 0 || n.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus must be odd and greater than 3", ErrInvalidKey)
	}
	return nil
}
