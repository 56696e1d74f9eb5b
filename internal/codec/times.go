package codec

import (
	"fmt"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/keeloq"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/keyderiv"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/policy"
)

const timesParamBits = 5

// GenerateTimes issues a code usable n times (n in [1,31]) within
// policy.TimesValidity of the current 20-minute window.
func GenerateTimes(adminKey string, n int, clk clock.Clock) (model.PasswordRecord, error) {
	if n < policy.TimesMin || n > policy.TimesMax {
		return model.PasswordRecord{}, model.ErrParameterOutOfRange(
			fmt.Sprintf("times must be in [%d,%d], got %d", policy.TimesMin, policy.TimesMax, n))
	}
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.PasswordRecord{}, model.ErrInvalidKey(err.Error())
	}

	now := clk.Now()
	window := windowIndex(now, policy.TimesQuantum)
	plaintext := pack(tagTimes, uint32(n-1), timesParamBits, window)
	cipher := keeloq.Encrypt(plaintext, key)
	text := Render(cipher)

	expiresAt := windowStart(window, policy.TimesQuantum).Add(policy.TimesValidity)
	msg := fmt.Sprintf("Times password, usable %d times, valid until %s", n, expiresAt.Format(clock.DisplayLayout))

	return model.PasswordRecord{
		Text:      text,
		ExpiresAt: expiresAt,
		Request:   model.Times{N: n},
		Message:   msg,
	}, nil
}

// VerifyTimes accepts a Times code whose embedded window lies within
// policy.TimesToleranceWindows of the receiver's current window.
func VerifyTimes(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool) {
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.VerifyResult{}, false
	}
	cipher, err := ParseText(text)
	if err != nil {
		return model.VerifyResult{}, false
	}

	plaintext := keeloq.Decrypt(cipher, key)
	tag, param, field := unpack(plaintext, timesParamBits)
	if tag != tagTimes {
		return model.VerifyResult{}, false
	}
	n := int(param) + 1
	if n < policy.TimesMin || n > policy.TimesMax {
		return model.VerifyResult{}, false
	}

	now := clk.Now()
	currentWindow := windowIndex(now, policy.TimesQuantum)
	windowBits := uint(windowBaseBits - timesParamBits)
	window := nearestCandidate(field, windowBits, currentWindow)

	if absInt64(currentWindow-window) > policy.TimesToleranceWindows {
		return model.VerifyResult{}, false
	}

	expiresAt := windowStart(window, policy.TimesQuantum).Add(policy.TimesValidity)
	if now.After(expiresAt) {
		return model.VerifyResult{}, false
	}

	return model.VerifyResult{
		Variant:   model.VariantTimes,
		Request:   model.Times{N: n},
		Remaining: expiresAt.Sub(now),
	}, true
}
