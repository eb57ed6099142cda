package mam

import (
	"errors"
	"testing"

	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/trit"
)

func TestSignAuthenticateRoundTrip(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed(t)
	security := 1

	key, addr := leafAddress(seed, 0, security, sponge)
	var root trit.Hash = addr // single-leaf tree: the address is its own root

	message := trit.StringToTrits("IAMSOMEMESSAGE9HEARMEROARMY")
	next := trit.FromTrits(trit.StringToTrits(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ9" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ9" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ9"))

	signed := Sign(message, next, key, nil, security, sponge)

	gotMessage, gotNext, err := Authenticate(signed, root, 0, sponge)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if trit.TritsToString(gotMessage) != trit.TritsToString(message) {
		t.Fatalf("recovered message %q, want %q",
			trit.TritsToString(gotMessage), trit.TritsToString(message))
	}
	if gotNext != next {
		t.Fatalf("recovered next root does not match")
	}
}

func TestAuthenticateDetectsTamperedPayload(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed(t)
	security := 1

	key, addr := leafAddress(seed, 5, security, sponge)
	root := addr

	message := trit.StringToTrits("ATAMPERRESISTANTMESSAGE")
	next := trit.FromTrits(trit.StringToTrits(
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ9" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ9" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ9"))

	signed := Sign(message, next, key, nil, security, sponge)
	signed[len(signed)-1] = signed[len(signed)-1] + 1
	if signed[len(signed)-1] > 1 {
		signed[len(signed)-1] = -1
	}

	_, _, err := Authenticate(signed, root, 0, sponge)
	if err == nil {
		t.Fatalf("Authenticate accepted a tampered payload")
	}
}

func TestAuthenticateWrongIndexFails(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed(t)
	security := 1
	const start, count = 1, 9

	addresses := make([]trit.Hash, count)
	var key []trit.Trit
	const signIndex = 3
	for i := 0; i < count; i++ {
		k, addr := leafAddress(seed, int64(start+i), security, sponge)
		addresses[i] = addr
		if i == signIndex {
			key = k
		}
	}
	siblings := Siblings(addresses, signIndex, sponge)
	root := Root(addresses[signIndex], siblings, signIndex, sponge)

	message := trit.StringToTrits("AMESSAGE")
	next := addresses[0]

	signed := Sign(message, next, key, siblings, security, sponge)

	if _, _, err := Authenticate(signed, root, signIndex+1, sponge); err == nil {
		t.Fatalf("Authenticate succeeded verifying against the wrong leaf index")
	}
}

func TestAuthenticateTruncatedPayloadIsMalformed(t *testing.T) {
	sponge := curl.Default()
	seed := testSeed(t)
	security := 1

	key, addr := leafAddress(seed, 0, security, sponge)
	root := addr

	message := trit.StringToTrits("AMESSAGE")
	next := addr

	signed := Sign(message, next, key, nil, security, sponge)

	_, _, err := Authenticate(signed[:len(signed)/2], root, 0, sponge)
	if err == nil {
		t.Fatalf("Authenticate accepted a truncated payload")
	}
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("Authenticate on a truncated payload returned %v, want it to classify as ErrMalformedPayload", err)
	}
}
