package mam

import (
	"math/bits"

	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/iss"
	"github.com/tritmam/mam/trit"
)

// leafKey derives the raw one-time key at the given leaf index under seed.
func leafKey(seed trit.Hash, index int64, security int, sponge *curl.Sponge) []trit.Trit {
	subseed := iss.Subseed(seed, index, sponge)
	return iss.Key(subseed, security, sponge)
}

// leafAddress derives both the raw key and the Merkle leaf address at the
// given index, the two layers every leaf in the tree is built from.
func leafAddress(seed trit.Hash, index int64, security int, sponge *curl.Sponge) (key []trit.Trit, address trit.Hash) {
	key = leafKey(seed, index, security, sponge)
	digest := iss.DigestKey(key, security, sponge)
	address = iss.Address(digest, sponge)
	return key, address
}

// Siblings returns the authentication path for addrs[index]: the sibling
// hash at every level of the binary tree built bottom-up over addrs, from
// the leaf level up to the root. Odd-length levels are padded with a zero
// hash before pairing.
func Siblings(addrs []trit.Hash, index int, sponge *curl.Sponge) []trit.Hash {
	hashCount := bits.Len(uint(index))
	out := make([]trit.Hash, 0, hashCount)

	hashIndex := index + 1
	if index&1 != 0 {
		hashIndex = index - 1
	}

	hashes := append([]trit.Hash{}, addrs...)
	length := len(hashes)

	for length > 1 {
		if length&1 == 1 {
			hashes = append(hashes, trit.Hash{})
			length++
		}
		out = append(out, hashes[hashIndex])

		hashIndex /= 2
		if hashIndex&1 == 0 {
			hashIndex++
		} else {
			hashIndex--
		}

		length /= 2
		for i := 0; i < length; i++ {
			sponge.Reset()
			sponge.AbsorbHash(hashes[i*2])
			sponge.AbsorbHash(hashes[i*2+1])
			hashes[i] = sponge.Rate()
		}
		hashes = hashes[:length]
	}
	return out
}

// Root folds address up through siblings, using index's bits to decide at
// each level whether the running hash is absorbed before or after the
// sibling, and returns the resulting tree root.
func Root(address trit.Hash, siblings []trit.Hash, index int, sponge *curl.Sponge) trit.Hash {
	out := address
	i := 1
	for _, h := range siblings {
		sponge.Reset()
		if i&index == 0 {
			sponge.AbsorbHash(out)
			sponge.AbsorbHash(h)
		} else {
			sponge.AbsorbHash(h)
			sponge.AbsorbHash(out)
		}
		i <<= 1
		out = sponge.Rate()
	}
	return out
}
