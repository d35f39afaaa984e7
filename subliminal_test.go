package oss

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SubliminalScheme", func() {
	var channel *SubliminalScheme
	var pub *PublicKey

	BeforeEach(func() {
		channel = NewSubliminalScheme(testKey)
		pub = channel.PublicKey()
	})

	It("Round-trips random secrets under random covers", func() {
		n := pub.N()
		for i := 0; i < 50; i++ {
			secret, cover := randomResidue(n), randomResidue(n)

			env, err := channel.Hide(secret, cover)
			Expect(err).To(BeNil(), fmt.Sprintf("failed to hide %v under %v: %s", secret, cover, err))
			Expect(env.Cover).To(Equal(cover))

			Expect(VerifyCover(pub, cover, &env.Signature)).To(BeTrue(), "cover %v does not verify", cover)
			Expect(channel.VerifyCover(env)).To(BeTrue())
			Expect(channel.Reveal(&env.Signature)).To(Equal(secret))
		}
	})

	It("Looks like an ordinary signature to a verifier", func() {
		secret, cover := big.NewInt(111111), big.NewInt(222222)
		env, err := channel.Hide(secret, cover)
		Expect(err).To(BeNil())

		Expect(Verify(pub, cover, &env.Signature)).To(BeTrue())
		Expect(VerifyCover(pub, plusOne(cover, pub.N()), &env.Signature)).To(BeFalse())
		Expect(VerifyCover(pub, secret, &env.Signature)).To(BeFalse())
	})

	It("Only needs the public key to check a cover", func() {
		encoded, err := pub.EncodePEM()
		Expect(err).To(BeNil())
		verifierKey, err := DecodePublicKeyPEM(encoded)
		Expect(err).To(BeNil())

		env, err := channel.Hide(big.NewInt(987654), big.NewInt(123456))
		Expect(err).To(BeNil())
		Expect(VerifyCover(verifierKey, env.Cover, &env.Signature)).To(BeTrue())
	})

	It("Recovers the blinding value of an ordinary signature", func() {
		signer := NewSignatureScheme(testKey, rand.Reader)
		sig, r, err := signer.Sign(big.NewInt(555555))
		Expect(err).To(BeNil())
		Expect(channel.Reveal(sig)).To(Equal(r))
	})

	It("Reveals secrets at or above n by their residue", func() {
		secret := big.NewInt(999999)
		env, err := channel.Hide(new(big.Int).Add(secret, pub.N()), big.NewInt(5432))
		Expect(err).To(BeNil())
		Expect(channel.Reveal(&env.Signature)).To(Equal(secret))
	})

	It("Does not hold on to the caller's cover", func() {
		cover := big.NewInt(5432)
		env, err := channel.Hide(big.NewInt(9876), cover)
		Expect(err).To(BeNil())

		cover.SetInt64(1)
		Expect(channel.VerifyCover(env)).To(BeTrue())
	})

	It("Rejects a secret that is not coprime to n", func() {
		for _, secret := range []*big.Int{pub.N(), big.NewInt(0), new(big.Int).Mul(pub.N(), big.NewInt(3))} {
			_, err := channel.Hide(secret, big.NewInt(5432))
			Expect(errors.Is(err, ErrNotCoprime)).To(BeTrue(), fmt.Sprintf("secret %v should be rejected: %v", secret, err))

			var notCoprime *NotCoprimeError
			Expect(errors.As(err, &notCoprime)).To(BeTrue())
			Expect(notCoprime.Operand).To(Equal("secret"))
		}
	})

	It("Rejects a cover that is not coprime to n", func() {
		_, err := channel.Hide(big.NewInt(9876), pub.N())
		var notCoprime *NotCoprimeError
		Expect(errors.As(err, &notCoprime)).To(BeTrue(), fmt.Sprintf("unexpected error: %v", err))
		Expect(notCoprime.Operand).To(Equal("cover"))
	})

	It("Names the shared factor with a composite modulus", func() {
		composite := new(big.Int).Mul(smallN, big.NewInt(1000033))
		key, err := NewKeyMaterial(composite, smallK)
		Expect(err).To(BeNil())

		_, err = NewSubliminalScheme(key).Hide(big.NewInt(9876), new(big.Int).Mul(smallN, big.NewInt(5)))
		var notCoprime *NotCoprimeError
		Expect(errors.As(err, &notCoprime)).To(BeTrue(), fmt.Sprintf("unexpected error: %v", err))
		Expect(notCoprime.Operand).To(Equal("cover"))
		Expect(notCoprime.GCD).To(Equal(smallN))
	})

	It("Refuses nil operands", func() {
		_, err := channel.Hide(nil, big.NewInt(1))
		Expect(errors.Is(err, ErrInvalidParameter)).To(BeTrue())
		_, err = channel.Hide(big.NewInt(1), nil)
		Expect(errors.Is(err, ErrInvalidParameter)).To(BeTrue())

		Expect(channel.VerifyCover(nil)).To(BeFalse())
		Expect(channel.Reveal(nil)).To(BeNil())
	})

	Context("Byte secrets", func() {
		It("Round-trips secrets with leading zero bytes", func() {
			for _, secret := range [][]byte{[]byte("meet at dawn"), {0x00, 0x00, 0x01}, {0x01, 0x00}} {
				env, err := channel.HideBytes(secret, big.NewInt(5432))
				Expect(err).To(BeNil())
				Expect(channel.VerifyCover(env)).To(BeTrue())

				revealed, err := channel.RevealBytes(&env.Signature)
				Expect(err).To(BeNil())
				Expect(bytes.Equal(revealed, secret)).To(BeTrue(), fmt.Sprintf("%x != %x", revealed, secret))
			}
		})

		It("Rejects secrets too long for the modulus", func() {
			_, err := channel.HideBytes(make([]byte, pub.Size()/8), big.NewInt(5432))
			Expect(errors.Is(err, ErrMessageTooLong)).To(BeTrue(), fmt.Sprintf("unexpected error: %v", err))
		})

		It("Fails to decode an integer secret that was never padded", func() {
			env, err := channel.Hide(big.NewInt(9876), big.NewInt(5432))
			Expect(err).To(BeNil())
			_, err = channel.RevealBytes(&env.Signature)
			Expect(err).NotTo(BeNil())
		})
	})

	Context("With the fixed n = 1,000,003 key", func() {
		It("Hides 9876 under 5432", func() {
			key := smallKey()
			fixed := NewSubliminalScheme(key)

			env, err := fixed.Hide(big.NewInt(9876), big.NewInt(5432))
			Expect(err).To(BeNil())
			Expect(VerifyCover(key.Public(), big.NewInt(5432), &env.Signature)).To(BeTrue())
			Expect(fixed.Reveal(&env.Signature)).To(Equal(big.NewInt(9876)))
		})
	})
})
