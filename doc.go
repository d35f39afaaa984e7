/*
Package oss implements the Ong–Schnorr–Shamir (OSS) signature scheme and its subliminal channel using Go's math/big

# Overview

OSS works over the integers mod n, for a large prime n. The private key is an integer k coprime to n,
and the public key is (n, h) with h = -(k^-1)^2 (mod n). A signature on a message M is any pair (S1, S2) with

	S1^2 + h*S2^2 ≡ M (mod n)

Only the holder of k can produce such a pair efficiently, and anyone can check it.

# Key material

Keys are either generated, with a Miller-Rabin probable prime for n:

	key, err := oss.GenerateKey(rand.Reader, 512)

or built from a known (n, k), in which case n is trusted to be prime and only gcd(n, k) = 1 is checked:

	key, err := oss.NewKeyMaterial(n, k)

Key material never changes after it is built, so a single value can back any number of schemes and goroutines.
Generation retries are bounded by [GenerateOptions]; running out of attempts returns [ErrGenerationFailed].

# Signatures

	signer := oss.NewSignatureScheme(key, rand.Reader)
	sig, _, err := signer.Sign(big.NewInt(12345))
	ok := oss.Verify(key.Public(), big.NewInt(12345), sig)

Signing draws a fresh blinding value r for every call, so signing the same message twice gives two different
signatures that both verify. Verification never returns an error; malformed input is rejected.

# The subliminal channel

The blinding value r is not needed to verify, and the holder of k can recover it from a signature:

	r = S1 - k^-1 * S2 (mod n)

Choosing r deliberately turns the signature into a covert channel. The sender hides a secret as r while signing an
innocuous cover message; third parties see only a valid signature on the cover, and the key holder reveals the secret:

	channel := oss.NewSubliminalScheme(key)
	env, err := channel.Hide(big.NewInt(9876), big.NewInt(5432))
	ok := oss.VerifyCover(key.Public(), env.Cover, &env.Signature)
	secret := channel.Reveal(&env.Signature) // 9876

Both the secret and the cover must be coprime to n, otherwise Hide returns a [*NotCoprimeError].

# Sources

	[1] H. Ong, C. P. Schnorr, A. Shamir, "An efficient signature scheme based on quadratic equations", STOC 1984
	[2] G. J. Simmons, "The subliminal channel and digital signatures", EUROCRYPT 1984
*/
package oss
