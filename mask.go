package mam

import (
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/trit"
)

// Mask XORs (trit-sum) payload against a keystream derived by absorbing
// keys in order and squeezing a single rate block. The same HashLength
// keystream block is reused across every HashLength-sized chunk of
// payload; payloads longer than one block repeat it rather than
// re-squeezing, matching the reference masking scheme exactly. keys may be
// of any length (a channel root is HashLength trits, an index is usually
// much shorter).
func Mask(payload []trit.Trit, keys [][]trit.Trit, sponge *curl.Sponge) []trit.Trit {
	sponge.Reset()
	for _, k := range keys {
		sponge.Absorb(k)
	}
	keyChunk := sponge.Rate()
	return sumChunks(payload, keyChunk.Trits())
}

// Unmask reverses Mask: the same keystream block is derived and negated
// before being summed against payload, which inverts the original sum.
func Unmask(payload []trit.Trit, keys [][]trit.Trit, sponge *curl.Sponge) []trit.Trit {
	sponge.Reset()
	for _, k := range keys {
		sponge.Absorb(k)
	}
	keyChunk := sponge.Rate()
	neg := make([]trit.Trit, len(keyChunk))
	for i, t := range keyChunk.Trits() {
		neg[i] = -t
	}
	return sumChunks(payload, neg)
}

func sumChunks(payload []trit.Trit, keyChunk []trit.Trit) []trit.Trit {
	out := make([]trit.Trit, len(payload))
	for i, p := range payload {
		out[i] = trit.Sum(p, keyChunk[i%len(keyChunk)])
	}
	return out
}
