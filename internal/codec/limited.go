package codec

import (
	"fmt"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/keeloq"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/keyderiv"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/policy"
)

const limitedParamBits = 8

func validateLimited(hours, minutes int) error {
	if hours < 0 || hours > policy.LimitedMaxHours {
		return model.ErrParameterOutOfRange(fmt.Sprintf("hours must be in [0,%d], got %d", policy.LimitedMaxHours, hours))
	}
	if minutes != 0 && minutes != policy.LimitedMinutesStep {
		return model.ErrParameterOutOfRange(fmt.Sprintf("minutes must be 0 or %d, got %d", policy.LimitedMinutesStep, minutes))
	}
	if hours == 0 && minutes == 0 {
		return model.ErrParameterOutOfRange("duration must not be zero")
	}
	return nil
}

func limitedEncode(hours, minutes int) uint32 {
	d := hours*2
	if minutes == policy.LimitedMinutesStep {
		d++
	}
	return uint32(d)
}

func limitedDecode(d uint32) (hours, minutes int) {
	hours = int(d) / 2
	if int(d)%2 == 1 {
		minutes = policy.LimitedMinutesStep
	}
	return
}

// GenerateLimited issues a code valid from the current 30-minute window
// through window_start + hours*60+minutes minutes.
func GenerateLimited(adminKey string, hours, minutes int, clk clock.Clock) (model.PasswordRecord, error) {
	if err := validateLimited(hours, minutes); err != nil {
		return model.PasswordRecord{}, err
	}
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.PasswordRecord{}, model.ErrInvalidKey(err.Error())
	}

	now := clk.Now()
	window := windowIndex(now, policy.LimitedQuantum)
	d := limitedEncode(hours, minutes)
	plaintext := pack(tagLimited, d, limitedParamBits, window)
	cipher := keeloq.Encrypt(plaintext, key)
	text := Render(cipher)

	duration := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	expiresAt := windowStart(window, policy.LimitedQuantum).Add(duration)
	msg := fmt.Sprintf("Limited password, valid for %dh%dm, until %s", hours, minutes, expiresAt.Format(clock.DisplayLayout))

	return model.PasswordRecord{
		Text:      text,
		ExpiresAt: expiresAt,
		Request:   model.Limited{Hours: hours, Minutes: minutes},
		Message:   msg,
	}, nil
}

// VerifyLimited accepts a Limited code while now is at or before the
// deadline carried inside the code itself (emission window start plus the
// encoded duration).
func VerifyLimited(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool) {
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.VerifyResult{}, false
	}
	cipher, err := ParseText(text)
	if err != nil {
		return model.VerifyResult{}, false
	}

	plaintext := keeloq.Decrypt(cipher, key)
	tag, param, field := unpack(plaintext, limitedParamBits)
	if tag != tagLimited {
		return model.VerifyResult{}, false
	}
	if param == 0 {
		return model.VerifyResult{}, false
	}
	hours, minutes := limitedDecode(param)
	if err := validateLimited(hours, minutes); err != nil {
		return model.VerifyResult{}, false
	}

	now := clk.Now()
	currentWindow := windowIndex(now, policy.LimitedQuantum)
	windowBits := uint(windowBaseBits - limitedParamBits)
	window := nearestCandidate(field, windowBits, currentWindow)

	duration := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	expiresAt := windowStart(window, policy.LimitedQuantum).Add(duration)
	if now.After(expiresAt) {
		return model.VerifyResult{}, false
	}

	return model.VerifyResult{
		Variant:   model.VariantLimited,
		Request:   model.Limited{Hours: hours, Minutes: minutes},
		Remaining: expiresAt.Sub(now),
	}, true
}
