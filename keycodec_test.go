package oss

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Key encoding", func() {
	It("Round-trips a public key", func() {
		encoded, err := testKey.Public().EncodePEM()
		Expect(err).To(BeNil(), fmt.Sprintf("failed to encode public key: %s", err))
		Expect(encoded).To(HavePrefix("-----BEGIN " + publicKeyPEMType))

		decoded, err := DecodePublicKeyPEM(encoded)
		Expect(err).To(BeNil(), fmt.Sprintf("failed to decode public key: %s", err))
		Expect(decoded.Equal(testKey.Public())).To(BeTrue())
	})

	It("Round-trips key material", func() {
		encoded, err := testKey.EncodePEM()
		Expect(err).To(BeNil())

		decoded, err := DecodeKeyMaterialPEM(encoded)
		Expect(err).To(BeNil())
		Expect(decoded.Public().Equal(testKey.Public())).To(BeTrue())
		Expect(decoded.K()).To(Equal(testKey.K()))
		Expect(decoded.Validate()).To(Succeed())
	})

	It("Refuses to read one kind of block as the other", func() {
		encoded, err := testKey.EncodePEM()
		Expect(err).To(BeNil())
		_, err = DecodePublicKeyPEM(encoded)
		Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue())

		encoded, err = testKey.Public().EncodePEM()
		Expect(err).To(BeNil())
		_, err = DecodeKeyMaterialPEM(encoded)
		Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue())
	})

	It("Rejects garbage and trailing data", func() {
		_, err := DecodeKeyMaterialPEM("not a key")
		Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue())

		encoded, err := testKey.EncodePEM()
		Expect(err).To(BeNil())
		_, err = DecodeKeyMaterialPEM(encoded + strings.Replace(encoded, keyMaterialPEMType, "OTHER", 2))
		Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue())
	})

	It("Re-validates decoded key material", func() {
		// k = 7 shares a factor with n = 7 * 1,000,003
		der, err := asn1.Marshal(keyMaterial{
			N: new(big.Int).Mul(smallN, big.NewInt(7)).Bytes(),
			K: big.NewInt(7).Bytes(),
		})
		Expect(err).To(BeNil())
		encoded, err := encodePEMBlock(keyMaterialPEMType, der)
		Expect(err).To(BeNil())

		_, err = DecodeKeyMaterialPEM(encoded)
		Expect(errors.Is(err, ErrMalformedKey)).To(BeTrue(), fmt.Sprintf("unexpected error: %v", err))
	})
})
