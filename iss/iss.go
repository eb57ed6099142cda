// Package iss implements the one-time signature primitive MAM's Merkle
// leaves are built from: deterministic key derivation from a seed, hash
// chains over key fragments, and the checksum property HammingNonce search
// grinds for.
package iss

import (
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/trit"
)

// FragmentLength is the width in trits of a single key/signature fragment.
const FragmentLength = trit.HashLength

// NumFragments is the number of fragments in one security level's key.
const NumFragments = 27

// ChainLength is the number of hash-chain steps separating the low end of a
// fragment's chain (the private key) from the high end (the public digest).
const ChainLength = 26

// KeyLength is the width in trits of a single security level's expanded key.
const KeyLength = NumFragments * FragmentLength

// MaxDigit and MinDigit bound the normalized digits extracted from a hash:
// each digit selects how far along its fragment's chain a signature sits.
const MaxDigit = 13
const MinDigit = -13

// MaxSecurity is the highest security level this module signs or verifies
// at. A verifier recovers the security level a signature was made at from
// the signed hash itself (ChecksumSecurity), so it needs an upper bound to
// search up to.
const MaxSecurity = 3

// Subseed derives the per-index private seed a key is expanded from: seed
// is treated as an unsigned trit integer, incremented index times in
// place, then absorbed and squeezed through the sponge. seed is a value
// parameter, so the increments never escape to the caller's copy.
func Subseed(seed trit.Hash, index int64, sponge *curl.Sponge) trit.Hash {
	buf := seed.Trits()
	for i := int64(0); i < index; i++ {
		trit.Incr(buf)
	}
	sponge.Reset()
	sponge.AbsorbHash(seed)
	return sponge.Rate()
}

// Key expands a subseed into a raw security-level key of KeyLength*security
// trits, by repeatedly squeezing the sponge after a single absorb of the
// subseed.
func Key(subseed trit.Hash, security int, sponge *curl.Sponge) []trit.Trit {
	sponge.Reset()
	sponge.AbsorbHash(subseed)
	out := make([]trit.Trit, 0, KeyLength*security)
	for i := 0; i < NumFragments*security; i++ {
		h := sponge.Rate()
		out = append(out, h.Trits()...)
	}
	return out
}

// hashNTimes repeatedly absorbs-then-squeezes in, steps times, returning the
// trits at the far end of the chain. steps == 0 returns a copy of in.
func hashNTimes(sponge *curl.Sponge, in []trit.Trit, steps int) []trit.Trit {
	cur := append([]trit.Trit{}, in...)
	for i := 0; i < steps; i++ {
		sponge.Reset()
		sponge.Absorb(cur)
		h := sponge.Rate()
		cur = append(cur[:0], h.Trits()...)
	}
	return cur
}

// combineFragments absorbs a set of fragment-length chunks and squeezes out
// a single digest, the last step shared by DigestKey and
// DigestBundleSignature.
func combineFragments(fragments []trit.Trit, sponge *curl.Sponge) trit.Hash {
	sponge.Reset()
	sponge.Absorb(fragments)
	return sponge.Rate()
}

// DigestKey walks every fragment of a raw key to the end of its chain
// (ChainLength steps) and combines the results into a single digest.
func DigestKey(key []trit.Trit, security int, sponge *curl.Sponge) trit.Hash {
	n := NumFragments * security
	ends := make([]trit.Trit, 0, n*FragmentLength)
	for i := 0; i < n; i++ {
		frag := key[i*FragmentLength : (i+1)*FragmentLength]
		ends = append(ends, hashNTimes(sponge, frag, ChainLength)...)
	}
	return combineFragments(ends, sponge)
}

// Address absorbs a digest and squeezes out the address used as a Merkle
// leaf, the second of the two derivation stages a key goes through before
// it names a position in the tree.
func Address(digest trit.Hash, sponge *curl.Sponge) trit.Hash {
	sponge.Reset()
	sponge.AbsorbHash(digest)
	return sponge.Rate()
}

// NormalizedDigits extracts count digits in [MinDigit, MaxDigit] from h, by
// repeatedly squeezing a sponge seeded on h and reading one digit from each
// tryte of every squeeze.
func NormalizedDigits(h trit.Hash, count int, sponge *curl.Sponge) []int8 {
	sponge.Reset()
	sponge.AbsorbHash(h)
	out := make([]int8, count)
	buf := make([]trit.Trit, 0, trit.TritsPerTryte)
	produced := 0
	for produced < count {
		rate := sponge.Rate()
		trits := rate.Trits()
		for i := 0; i+trit.TritsPerTryte <= len(trits) && produced < count; i += trit.TritsPerTryte {
			buf = buf[:0]
			buf = append(buf, trits[i:i+trit.TritsPerTryte]...)
			out[produced] = int8(trit.TritsToInt(buf))
			produced++
		}
	}
	return out
}

// ChecksumSecurity reports the highest security level s in [0, maxSecurity]
// for which every one of the first NumFragments*s normalized digits of h is
// strictly below MaxDigit. A digit at MaxDigit means its fragment's chain
// can't be extended further when signing, which is the property
// HammingNonce grinds against.
func ChecksumSecurity(h trit.Hash, maxSecurity int, sponge *curl.Sponge) int {
	digits := NormalizedDigits(h, NumFragments*maxSecurity, sponge)
	security := 0
	for s := 1; s <= maxSecurity; s++ {
		ok := true
		for i := (s - 1) * NumFragments; i < s*NumFragments; i++ {
			if digits[i] >= MaxDigit {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		security = s
	}
	return security
}

// Signature signs bundleHash with key (a raw security-level key from Key),
// producing one fragment per digit: each key fragment's chain is walked
// forward (MaxDigit - digit) steps.
func Signature(key []trit.Trit, bundleHash trit.Hash, security int, sponge *curl.Sponge) []trit.Trit {
	digits := NormalizedDigits(bundleHash, NumFragments*security, sponge)
	out := make([]trit.Trit, 0, len(key))
	for i, d := range digits {
		frag := key[i*FragmentLength : (i+1)*FragmentLength]
		steps := int(MaxDigit - d)
		out = append(out, hashNTimes(sponge, frag, steps)...)
	}
	return out
}

// DigestBundleSignature completes each signature fragment's chain the
// remaining (MaxDigit + digit) steps and combines the results exactly as
// DigestKey would have from the original key, recovering the same digest
// a legitimate signer's DigestKey produced.
func DigestBundleSignature(sig []trit.Trit, bundleHash trit.Hash, security int, sponge *curl.Sponge) trit.Hash {
	digits := NormalizedDigits(bundleHash, NumFragments*security, sponge)
	ends := make([]trit.Trit, 0, len(sig))
	for i, d := range digits {
		frag := sig[i*FragmentLength : (i+1)*FragmentLength]
		steps := int(MaxDigit + d)
		ends = append(ends, hashNTimes(sponge, frag, steps)...)
	}
	return combineFragments(ends, sponge)
}
