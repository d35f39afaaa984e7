package oss

import (
	"errors"
	"fmt"
	"math/big"

	ossmath "github.com/bastionzero/oss/math"
)

var (
	// ErrInvalidKey indicates an (n, k) pair that cannot form key material, most importantly gcd(n, k) != 1
	ErrInvalidKey = errors.New("oss: invalid key")

	// ErrNotCoprime indicates a message, secret or cover that shares a nontrivial factor with n
	ErrNotCoprime = errors.New("oss: operand not coprime to modulus")

	// ErrNoModularInverse means an inverse was requested for a value that has none. Every caller checks
	// coprimality first, so seeing this is a bug rather than bad input
	ErrNoModularInverse = ossmath.ErrNoInverse

	// ErrGenerationFailed indicates a bounded random search ran out of attempts
	ErrGenerationFailed = errors.New("oss: generation failed")

	// ErrInvalidParameter indicates an out-of-range argument such as a too-short bit length
	ErrInvalidParameter = errors.New("oss: invalid parameter")

	// ErrMessageTooLong indicates encoded bytes that do not fit below the modulus
	ErrMessageTooLong = errors.New("oss: message too long for modulus")

	// ErrMalformedKey indicates a PEM or DER blob that does not decode to key material
	ErrMalformedKey = errors.New("oss: malformed key encoding")
)

// Error wraps an underlying error with the operation that produced it
type Error struct {
	Op  string // operation that failed
	Err error  // underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("oss.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

// errorf creates a new Error whose message wraps sentinel
func errorf(op string, sentinel error, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

// NotCoprimeError names the operand of a subliminal hide that shares a factor with n
type NotCoprimeError struct {
	Operand string   // "secret" or "cover"
	GCD     *big.Int // the shared factor gcd(operand, n)
}

func (e *NotCoprimeError) Error() string {
	return fmt.Sprintf("%v: %s shares factor %s with n", ErrNotCoprime, e.Operand, e.GCD)
}

// Is lets errors.Is(err, ErrNotCoprime) match
func (e *NotCoprimeError) Is(target error) bool {
	return target == ErrNotCoprime
}
