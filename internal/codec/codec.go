// Package codec implements the shared 32-bit plaintext layout underlying
// all four password variants, and the decimal wire rendering every variant
// uses on top of it.
//
// Layout: [tag:2 bits][parameter:k bits][window:(30-k) bits], tag in the
// top two bits, parameter next, window filling the remainder. k (the
// parameter width) and the window's quantum are fixed per variant.
package codec

import (
	"fmt"
	"strconv"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
)

// Tag values for the four variants. The distilled spec leaves this
// assignment open (see DESIGN.md); this implementation fixes it once and
// for all.
const (
	tagTemporary uint32 = 0
	tagTimes     uint32 = 1
	tagLimited   uint32 = 2
	tagPeriod    uint32 = 3
)

// windowBaseBits is 32 total bits minus the 2 tag bits.
const windowBaseBits = 30

// pack assembles a 32-bit plaintext from a tag, a parameter value occupying
// paramBits bits, and a window index occupying the remaining bits.
func pack(tag uint32, param uint32, paramBits uint, window int64) uint32 {
	windowBits := uint(windowBaseBits) - paramBits
	windowMask := uint32(1)<<windowBits - 1
	paramMask := uint32(1)<<paramBits - 1
	return (tag&0x3)<<30 | (param&paramMask)<<windowBits | (uint32(window) & windowMask)
}

// unpack splits a 32-bit plaintext back into its tag, parameter, and
// truncated window field, given the variant's parameter width.
func unpack(plaintext uint32, paramBits uint) (tag, param, windowField uint32) {
	windowBits := uint(windowBaseBits) - paramBits
	windowMask := uint32(1)<<windowBits - 1
	paramMask := uint32(1)<<paramBits - 1
	tag = (plaintext >> 30) & 0x3
	param = (plaintext >> windowBits) & paramMask
	windowField = plaintext & windowMask
	return
}

// nearestCandidate reconstructs the unique absolute window index congruent
// to field modulo 2^fieldBits that lies closest to now. Ties favor the
// later (larger) window, per the distilled spec's tie-breaking rule.
//
// This resolves the ambiguity inherent in any truncated field: the true
// window could be field, field+2^fieldBits, field-2^fieldBits, and so on.
// Only the window nearest "now" is a plausible candidate for a code that
// was just issued or is still within its validity span.
func nearestCandidate(field uint32, fieldBits uint, now int64) int64 {
	mod := int64(1) << fieldBits
	base := (now / mod) * mod

	best := base + int64(field)
	bestDist := absInt64(best - now)
	for _, cand := range [2]int64{best - mod, best + mod} {
		d := absInt64(cand - now)
		if d < bestDist || (d == bestDist && cand > best) {
			best, bestDist = cand, d
		}
	}
	return best
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Render encodes a ciphertext as the decimal wire format: a literal '5'
// followed by the ciphertext's decimal digits, left-padded to at least 9
// digits.
func Render(ciphertext uint32) string {
	return "5" + fmt.Sprintf("%09d", ciphertext)
}

// ParseText decodes the wire format back into a ciphertext, rejecting
// anything that isn't at least 10 digits starting with a literal '5'.
func ParseText(text string) (uint32, error) {
	if len(text) < 10 {
		return 0, model.ErrMalformed("password must be at least 10 characters")
	}
	if text[0] != '5' {
		return 0, model.ErrMalformed("password must start with '5'")
	}
	digits := text[1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, model.ErrMalformed("password must be decimal digits")
		}
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || v > 0xFFFFFFFF {
		return 0, model.ErrMalformed("password does not fit a 32-bit ciphertext")
	}
	return uint32(v), nil
}
