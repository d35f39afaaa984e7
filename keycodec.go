package oss

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
)

const (
	publicKeyPEMType   = "OSS PUBLIC KEY"
	keyMaterialPEMType = "OSS PRIVATE KEY"
)

// used exclusively as a placeholder for encoding-decoding
type publicKey struct {
	N []byte
	H []byte
}

// used exclusively as a placeholder for encoding-decoding. h is re-derived on decode rather than trusted
type keyMaterial struct {
	N []byte
	K []byte
}

// EncodePEM returns a PEM encoding of the public key
func (pub *PublicKey) EncodePEM() (string, error) {
	// we perform this conversion because asn1.Marshal cannot handle pointer values or unexported fields
	b, err := asn1.Marshal(publicKey{
		N: pub.n.Bytes(),
		H: pub.h.Bytes(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}
	return encodePEMBlock(publicKeyPEMType, b)
}

// DecodePublicKeyPEM returns a public key from its PEM encoding
func DecodePublicKeyPEM(encoded string) (*PublicKey, error) {
	der, err := decodePEMBlock(publicKeyPEMType, encoded)
	if err != nil {
		return nil, opError("DecodePublicKeyPEM", err)
	}

	var pk publicKey
	rest, err := asn1.Unmarshal(der, &pk)
	if err != nil || len(rest) > 0 {
		return nil, errorf("DecodePublicKeyPEM", ErrMalformedKey, "failed to unmarshal DER-encoded public key")
	}

	pub, err := NewPublicKey(new(big.Int).SetBytes(pk.N), new(big.Int).SetBytes(pk.H))
	if err != nil {
		return nil, opError("DecodePublicKeyPEM", fmt.Errorf("%w: %v", ErrMalformedKey, err))
	}
	return pub, nil
}

// EncodePEM returns a PEM encoding of the full key material, private value included.
// Where the result is stored is up to the caller
func (key *KeyMaterial) EncodePEM() (string, error) {
	b, err := asn1.Marshal(keyMaterial{
		N: key.n.Bytes(),
		K: key.k.Bytes(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}
	return encodePEMBlock(keyMaterialPEMType, b)
}

// DecodeKeyMaterialPEM returns key material from its PEM encoding. The decoded (n, k) goes through the same
// validation as NewKeyMaterial
func DecodeKeyMaterialPEM(encoded string) (*KeyMaterial, error) {
	der, err := decodePEMBlock(keyMaterialPEMType, encoded)
	if err != nil {
		return nil, opError("DecodeKeyMaterialPEM", err)
	}

	var km keyMaterial
	rest, err := asn1.Unmarshal(der, &km)
	if err != nil || len(rest) > 0 {
		return nil, errorf("DecodeKeyMaterialPEM", ErrMalformedKey, "failed to unmarshal DER-encoded key material")
	}

	key, err := NewKeyMaterial(new(big.Int).SetBytes(km.N), new(big.Int).SetBytes(km.K))
	if err != nil {
		return nil, opError("DecodeKeyMaterialPEM", fmt.Errorf("%w: %v", ErrMalformedKey, err))
	}
	return key, nil
}

func encodePEMBlock(blockType string, der []byte) (string, error) {
	keyPEM := new(bytes.Buffer)
	err := pem.Encode(keyPEM, &pem.Block{
		Type:  blockType,
		Bytes: der,
	})
	if err != nil {
		return "", fmt.Errorf("failed to PEM-encode: %s", err)
	}
	return keyPEM.String(), nil
}

func decodePEMBlock(blockType string, encoded string) ([]byte, error) {
	block, rest := pem.Decode([]byte(encoded))
	if block == nil || block.Type != blockType || len(bytes.TrimSpace(rest)) > 0 {
		return nil, fmt.Errorf("%w: no %s PEM block", ErrMalformedKey, blockType)
	}
	return block.Bytes, nil
}
