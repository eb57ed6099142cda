package iss

import (
	"testing"

	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/trit"
)

func testSeed() trit.Hash {
	return trit.FromTrits(trit.StringToTrits(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ9ABCDEFGHIJKLMNOPQRSTUVWXYZ9ABCDEFGHIJKLMNOPQRSTUVWXYZ9"))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed()
	security := 2

	subseed := Subseed(seed, 0, sponge)
	key := Key(subseed, security, sponge)
	digest := DigestKey(key, security, sponge)
	address := Address(digest, sponge)

	msgSponge := curl.Default()
	msgSponge.Absorb(trit.StringToTrits("IAMSOMEMESSAGE9HEARMEROARMY"))
	bundleHash := msgSponge.Rate()

	sig := Signature(key, bundleHash, security, sponge)
	gotDigest := DigestBundleSignature(sig, bundleHash, security, sponge)
	gotAddress := Address(gotDigest, sponge)

	if gotAddress != address {
		t.Fatalf("Address(DigestBundleSignature(Signature(...))) != original address")
	}
}

func TestSignatureTamperedDetected(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed()
	security := 1

	subseed := Subseed(seed, 1, sponge)
	key := Key(subseed, security, sponge)
	digest := DigestKey(key, security, sponge)
	address := Address(digest, sponge)

	msgSponge := curl.Default()
	msgSponge.Absorb(trit.StringToTrits("ANOTHERMESSAGE"))
	bundleHash := msgSponge.Rate()

	sig := Signature(key, bundleHash, security, sponge)
	sig[0] = sig[0] + 1
	if sig[0] > 1 {
		sig[0] = -1
	}

	gotDigest := DigestBundleSignature(sig, bundleHash, security, sponge)
	gotAddress := Address(gotDigest, sponge)

	if gotAddress == address {
		t.Fatalf("tampered signature still recovered the original address")
	}
}

func TestSubseedIncrementsSeedInPlace(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed()

	incremented := append([]trit.Trit{}, seed.Trits()...)
	for i := 0; i < 5; i++ {
		trit.Incr(incremented)
	}
	incrementedHash := trit.FromTrits(incremented)

	sponge.Reset()
	sponge.AbsorbHash(incrementedHash)
	want := sponge.Rate()

	got := Subseed(seed, 5, sponge)
	if got != want {
		t.Fatalf("Subseed(seed, 5, ...) did not match absorbing seed incremented 5 times in place")
	}
}

func TestChecksumSecurityBounds(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed()
	h := Subseed(seed, 42, sponge)
	s := ChecksumSecurity(h, 3, sponge)
	if s < 0 || s > 3 {
		t.Fatalf("ChecksumSecurity returned out-of-range %d", s)
	}
}
