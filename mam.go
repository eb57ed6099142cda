package mam

import (
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/trit"
)

// Create builds the next message in a channel: it derives the one-time
// key and address for every leaf in [start, start+count), uses the one at
// the given local index to sign message, folds the authentication path up
// to a root, separately derives the root of the following batch of leaves
// [nextStart, nextStart+nextCount), and masks the signed body under a key
// derived from (root, index). index is the leaf's position within
// [start, start+count), not its absolute position under seed.
//
// It returns the masked payload to publish and the root that identifies
// this batch; callers keep that root to hand to readers (directly, for
// the channel's first message, or as the "next root" a prior message
// already committed to).
func Create(seed trit.Hash, message []trit.Trit, start, count, index, nextStart, nextCount, security int, sponge *curl.Sponge) (payload []trit.Trit, root trit.Hash) {
	addresses := make([]trit.Hash, count)
	var signingKey []trit.Trit
	for i := 0; i < count; i++ {
		key, addr := leafAddress(seed, int64(start+i), security, sponge)
		addresses[i] = addr
		if i == index {
			signingKey = key
		}
		log.Logf("mam: derived leaf %d/%d for batch [%d,%d)", i+1, count, start, start+count)
	}

	siblings := Siblings(addresses, index, sponge)
	root = Root(addresses[index], siblings, index, sponge)

	nextAddresses := make([]trit.Hash, nextCount)
	for i := 0; i < nextCount; i++ {
		_, addr := leafAddress(seed, int64(nextStart+i), security, sponge)
		nextAddresses[i] = addr
	}
	nextSiblings := Siblings(nextAddresses, 0, sponge)
	next := Root(nextAddresses[0], nextSiblings, 0, sponge)

	signed := Sign(message, next, signingKey, siblings, security, sponge)

	indexTrits := make([]trit.Trit, trit.MinTrits(int64(index)))
	trit.IntToTrits(int64(index), indexTrits)
	channelKey := [][]trit.Trit{root.Trits(), indexTrits}

	payload = Mask(signed, channelKey, sponge)
	return payload, root
}

// Parse recovers the plaintext message and next channel root from a
// payload produced by Create, verifying it against root at the given
// leaf index.
func Parse(payload []trit.Trit, root trit.Hash, index int, sponge *curl.Sponge) ([]trit.Trit, trit.Hash, error) {
	indexTrits := make([]trit.Trit, trit.MinTrits(int64(index)))
	trit.IntToTrits(int64(index), indexTrits)
	channelKey := [][]trit.Trit{root.Trits(), indexTrits}

	unmasked := Unmask(payload, channelKey, sponge)
	return Authenticate(unmasked, root, index, sponge)
}

// MessageID derives a stable, non-secret fingerprint for a channel from an
// ordered list of keys (typically just the channel root), by absorbing
// them, squeezing once, and re-absorbing that squeeze through a fresh
// round. It carries no part of the create/parse wire format; it exists
// purely as a human-checkable tag a reader can use to confirm two
// channels are the same one out of band.
func MessageID(keys [][]trit.Trit, sponge *curl.Sponge) trit.Hash {
	sponge.Reset()
	for _, k := range keys {
		sponge.Absorb(k)
	}
	mask := sponge.Rate()
	sponge.Reset()
	sponge.AbsorbHash(mask)
	return sponge.Rate()
}
