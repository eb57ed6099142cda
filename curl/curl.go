// Package curl implements the trit-domain sponge construction the rest of
// this module treats as an external collaborator (it only relies on
// Default/Absorb/Rate/Reset). Internally it is built on SHAKE256.
package curl

import (
	"golang.org/x/crypto/sha3"

	"github.com/tritmam/mam/trit"
)

// Sponge is a trit-in, trit-out sponge: absorb any number of trits, read
// back trit.HashLength of them at a time, reset to start a fresh run.
type Sponge struct {
	shake  sha3.ShakeHash
	rate   trit.Hash
	filled bool
}

// Default returns a freshly reset sponge.
func Default() *Sponge {
	s := &Sponge{}
	s.Reset()
	return s
}

// Reset discards all absorbed state, ready for a new message.
func (s *Sponge) Reset() {
	s.shake = sha3.NewShake256()
	s.filled = false
}

// Absorb feeds trits into the sponge. Call Rate to read the digest back
// out; absorbing after a Rate call without an intervening Reset is
// undefined by the external contract and not supported here.
func (s *Sponge) Absorb(trits []trit.Trit) {
	buf := make([]byte, len(trits))
	for i, tr := range trits {
		buf[i] = byte(int8(tr)) + 1 // map {-1,0,1} -> {0,1,2}
	}
	s.shake.Write(buf)
	s.filled = false
}

// Rate squeezes trit.HashLength trits out of the sponge and returns them.
// Repeated calls continue reading further from the same SHAKE stream.
func (s *Sponge) Rate() trit.Hash {
	buf := make([]byte, trit.HashLength)
	s.shake.Read(buf)
	var h trit.Hash
	for i, b := range buf {
		h[i] = trit.Trit(int(b%3) - 1)
	}
	return h
}

// AbsorbHash is a convenience for the common case of absorbing a single
// fixed-width hash.
func (s *Sponge) AbsorbHash(h trit.Hash) {
	s.Absorb(h.Trits())
}
