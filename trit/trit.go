// Package trit implements the balanced-ternary data model MAM is built on:
// trits, fixed-length hashes, and conversion to/from the tryte alphabet.
package trit

import "strings"

// HashLength is the width in trits of the sponge rate and thus of a Hash.
const HashLength = 243

// TritsPerTryte is the number of trits in a tryte.
const TritsPerTryte = 3

// A Trit is a balanced-ternary digit in {-1, 0, 1}.
type Trit int8

// A Hash is a fixed-length trit sequence of HashLength trits.
type Hash [HashLength]Trit

// Trits returns h as a plain slice, for passing to sponge/codec functions
// that work over []Trit.
func (h *Hash) Trits() []Trit { return h[:] }

// FromTrits copies src into a new Hash. Panics if len(src) != HashLength;
// callers own bounds-checking before constructing a Hash from wire data.
func FromTrits(src []Trit) Hash {
	if len(src) != HashLength {
		panic("trit: FromTrits: wrong length")
	}
	var h Hash
	copy(h[:], src)
	return h
}

const tryteAlphabet = "9ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CharToTrits converts a single tryte character ('9', 'A'..'Z') to its
// three-trit balanced-ternary value. '9' is 0, 'A' is 1, 'M' is 13, 'N' is
// -13, up through 'Z' which is -1.
func CharToTrits(c byte) [TritsPerTryte]Trit {
	idx := strings.IndexByte(tryteAlphabet, c)
	if idx < 0 {
		panic("trit: not a tryte character: " + string(c))
	}
	v := idx
	if v > 13 {
		v -= 27
	}
	var out [TritsPerTryte]Trit
	IntToTrits(int64(v), out[:])
	return out
}

// StringToTrits converts a tryte string into trits, three per character.
func StringToTrits(s string) []Trit {
	out := make([]Trit, 0, len(s)*TritsPerTryte)
	for i := 0; i < len(s); i++ {
		g := CharToTrits(s[i])
		out = append(out, g[:]...)
	}
	return out
}

// TritsToString converts a trit slice whose length is a multiple of
// TritsPerTryte back into a tryte string.
func TritsToString(trits []Trit) string {
	if len(trits)%TritsPerTryte != 0 {
		panic("trit: TritsToString: length not a multiple of TritsPerTryte")
	}
	var b strings.Builder
	for i := 0; i < len(trits); i += TritsPerTryte {
		v := TritsToInt(trits[i : i+TritsPerTryte])
		if v < 0 {
			v += 27
		}
		b.WriteByte(tryteAlphabet[v])
	}
	return b.String()
}

// MinTrits returns the smallest k >= 0 such that n fits in the balanced
// ternary range representable by k trits, i.e. [-(3^k-1)/2, (3^k-1)/2].
func MinTrits(n int64) int {
	if n < 0 {
		n = -n
	}
	k := 0
	bound := int64(0) // (3^k - 1) / 2
	pow := int64(1)
	for n > bound {
		pow *= 3
		bound = (pow - 1) / 2
		k++
	}
	return k
}

// IntToTrits writes n into out in balanced ternary, least significant trit
// first. len(out) must be at least MinTrits(n); any trailing trits are
// zeroed.
func IntToTrits(n int64, out []Trit) {
	for i := range out {
		out[i] = 0
	}
	for i := 0; i < len(out) && n != 0; i++ {
		switch n % 3 {
		case 0:
			out[i] = 0
		case 1:
			out[i] = 1
			n -= 1
		case -1:
			out[i] = -1
			n += 1
		case 2:
			out[i] = -1
			n += 1
		case -2:
			out[i] = 1
			n -= 1
		}
		n /= 3
	}
}

// TritsToInt interprets trits as a balanced-ternary integer, least
// significant trit first.
func TritsToInt(trits []Trit) int64 {
	var v int64
	for i := len(trits) - 1; i >= 0; i-- {
		v = v*3 + int64(trits[i])
	}
	return v
}

// Incr adds 1 to the balanced-ternary integer stored in buf, in place,
// wrapping modulo 3^len(buf). Infallible.
func Incr(buf []Trit) {
	for i := range buf {
		buf[i]++
		if buf[i] > 1 {
			buf[i] = -1
			continue
		}
		return
	}
}

// Sum returns (a+b) mod 3 mapped back into {-1,0,1}, the balanced-ternary
// addition used throughout masking.
func Sum(a, b Trit) Trit {
	s := a + b
	switch {
	case s > 1:
		return s - 3
	case s < -1:
		return s + 3
	default:
		return s
	}
}
