package mam

import (
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/hammingnonce"
	"github.com/tritmam/mam/iss"
	"github.com/tritmam/mam/trit"
)

// Sign assembles the signed body of a message: the next channel root
// prepended to messageIn, a proof-of-work nonce making the combined
// bundle hash carry at least the requested security level, an ISS
// signature of that hash under key, and the sibling path proving key's
// leaf belongs under the channel root. The layout is
//
//	pascal(len(next+messageIn) in trytes) || next || messageIn ||
//	pascal(len(nonce) in trytes)          || nonce ||
//	signature ||
//	pascal(len(siblings))                 || siblings...
func Sign(messageIn []trit.Trit, next trit.Hash, key []trit.Trit, siblings []trit.Hash, security int, sponge *curl.Sponge) []trit.Trit {
	message := make([]trit.Trit, 0, trit.HashLength+len(messageIn))
	message = append(message, next.Trits()...)
	message = append(message, messageIn...)
	messageLength := len(message) / trit.TritsPerTryte

	nonce := hammingnonce.Search(message, security, sponge)

	sponge.Reset()
	lenTrits := make([]trit.Trit, trit.MinTrits(int64(messageLength)))
	trit.IntToTrits(int64(messageLength), lenTrits)
	sponge.Absorb(lenTrits)
	sponge.Absorb(message)
	sponge.Absorb(nonce)
	bundleHash := sponge.Rate()

	signature := iss.Signature(key, bundleHash, security, sponge)

	out := make([]trit.Trit, 0)
	out = append(out, trit.Encode(int64(messageLength))...)
	out = append(out, message...)
	out = append(out, trit.Encode(int64(len(nonce)/trit.TritsPerTryte))...)
	out = append(out, nonce...)
	out = append(out, signature...)
	out = append(out, trit.Encode(int64(len(siblings)))...)
	for _, h := range siblings {
		out = append(out, h.Trits()...)
	}
	return out
}

// Authenticate parses payload produced by Sign and verifies it against
// root at the given leaf index. On success it returns the plaintext
// message and the next channel root the message committed to.
func Authenticate(payload []trit.Trit, root trit.Hash, index int, sponge *curl.Sponge) ([]trit.Trit, trit.Hash, error) {
	messageLength, n, err := trit.Decode(payload)
	if err != nil {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: decoding message length: %v", err)
	}
	pos := n
	messageTritLen := int(messageLength) * trit.TritsPerTryte
	if pos+messageTritLen > len(payload) {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: payload too short for declared message length")
	}
	message := payload[pos : pos+messageTritLen]
	pos += messageTritLen

	nonceLength, n, err := trit.Decode(payload[pos:])
	if err != nil {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: decoding nonce length: %v", err)
	}
	pos += n
	nonceTritLen := int(nonceLength) * trit.TritsPerTryte
	if pos+nonceTritLen > len(payload) {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: payload too short for declared nonce length")
	}
	nonce := payload[pos : pos+nonceTritLen]
	pos += nonceTritLen

	sponge.Reset()
	lenTrits := make([]trit.Trit, trit.MinTrits(messageLength))
	trit.IntToTrits(messageLength, lenTrits)
	sponge.Absorb(lenTrits)
	sponge.Absorb(message)
	sponge.Absorb(nonce)
	bundleHash := sponge.Rate()

	security := iss.ChecksumSecurity(bundleHash, iss.MaxSecurity, sponge)
	if security == 0 {
		return nil, trit.Hash{}, ErrInvalidHash
	}

	sigTritLen := security * iss.KeyLength
	if pos+sigTritLen > len(payload) {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: payload too short for declared security's signature")
	}
	signature := payload[pos : pos+sigTritLen]
	pos += sigTritLen

	digest := iss.DigestBundleSignature(signature, bundleHash, security, sponge)
	address := iss.Address(digest, sponge)

	numSiblings, n, err := trit.Decode(payload[pos:])
	if err != nil {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: decoding sibling count: %v", err)
	}
	pos += n
	need := int(numSiblings) * trit.HashLength
	if pos+need > len(payload) {
		return nil, trit.Hash{}, wrapErrorf(ErrMalformedPayload, "mam: payload too short for declared sibling count")
	}
	siblings := make([]trit.Hash, numSiblings)
	for i := range siblings {
		siblings[i] = trit.FromTrits(payload[pos : pos+trit.HashLength])
		pos += trit.HashLength
	}

	calculatedRoot := Root(address, siblings, index, sponge)
	if calculatedRoot != root {
		return nil, trit.Hash{}, ErrInvalidSignature
	}

	nextRoot := trit.FromTrits(message[:trit.HashLength])
	messageOut := append([]trit.Trit{}, message[trit.HashLength:]...)
	return messageOut, nextRoot, nil
}
