// Package hammingnonce implements the proof-of-work step MAM's signing
// path grinds through: finding a nonce suffix that pushes a framed
// absorption's checksum security up to the requested level.
package hammingnonce

import (
	"github.com/tritmam/mam/curl"
	"github.com/tritmam/mam/iss"
	"github.com/tritmam/mam/trit"
)

// MaxTryteWidth bounds how many trytes the nonce is allowed to grow to
// before Search gives up, so a malformed or unreachable target can't hang
// the caller forever.
const MaxTryteWidth = 9

// Search finds a nonce of trit.TritsPerTryte-aligned length such that
// absorbing int2trits(len(prefix)/TritsPerTryte), then prefix, then the
// nonce into a fresh sponge yields a squeeze whose ChecksumSecurity, taken
// up to iss.MaxSecurity, is exactly security. That framing must match the
// one the caller will later hash for real (see Sign/Authenticate's
// lenTrits/message/nonce absorption) or the nonce found here proves
// nothing about the hash actually signed, and the level must be exact
// because Authenticate reads the signature's security level back off that
// hash. It returns the nonce trits, growing the nonce by one tryte and
// restarting the count from zero whenever all 3^width values of the
// current width have been tried.
func Search(prefix []trit.Trit, security int, sponge *curl.Sponge) []trit.Trit {
	prefixLength := len(prefix) / trit.TritsPerTryte
	lenTrits := make([]trit.Trit, trit.MinTrits(int64(prefixLength)))
	trit.IntToTrits(int64(prefixLength), lenTrits)

	for width := trit.TritsPerTryte; width <= MaxTryteWidth*trit.TritsPerTryte; width += trit.TritsPerTryte {
		nonce := make([]trit.Trit, width)
		tried := int64(0)
		total := int64(1)
		for i := 0; i < width; i++ {
			total *= 3
		}
		for tried < total {
			sponge.Reset()
			sponge.Absorb(lenTrits)
			sponge.Absorb(prefix)
			sponge.Absorb(nonce)
			h := sponge.Rate()
			if iss.ChecksumSecurity(h, iss.MaxSecurity, sponge) == security {
				return append([]trit.Trit{}, nonce...)
			}
			trit.Incr(nonce)
			tried++
		}
	}
	panic("hammingnonce: no nonce found within MaxTryteWidth")
}
