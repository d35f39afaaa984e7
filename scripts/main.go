// prints freshly generated key material as PEM, private block first. Nothing is written to disk.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"

	"github.com/bastionzero/oss"
	"github.com/bastionzero/oss/logging"
)

func main() {
	bits := flag.Int("bits", 512, "modulus size in bits")
	flag.Parse()

	key, err := oss.GenerateKeyWithOptions(rand.Reader, *bits, oss.GenerateOptions{Logger: logging.Discard()})
	if err != nil {
		panic(err)
	}

	// round-trip through the codec before printing
	private, err := key.EncodePEM()
	if err != nil {
		panic(err)
	}
	if _, err := oss.DecodeKeyMaterialPEM(private); err != nil {
		panic(err)
	}

	public, err := key.Public().EncodePEM()
	if err != nil {
		panic(err)
	}

	fmt.Print(private)
	fmt.Print(public)
}
