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

const temporaryParamBits = 0

func quantumSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// windowIndex returns floor(local epoch seconds / quantum).
func windowIndex(t time.Time, quantum time.Duration) int64 {
	return t.Unix() / quantumSeconds(quantum)
}

func windowStart(window int64, quantum time.Duration) time.Time {
	return time.Unix(window*quantumSeconds(quantum), 0).In(clock.Location)
}

// GenerateTemporary issues a single-use code valid for policy.TemporaryValidity
// from the current 4-second window.
func GenerateTemporary(adminKey string, clk clock.Clock) (model.PasswordRecord, error) {
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.PasswordRecord{}, model.ErrInvalidKey(err.Error())
	}

	now := clk.Now()
	window := windowIndex(now, policy.TemporaryQuantum)
	plaintext := pack(tagTemporary, 0, temporaryParamBits, window)
	cipher := keeloq.Encrypt(plaintext, key)
	text := Render(cipher)

	expiresAt := windowStart(window, policy.TemporaryQuantum).Add(policy.TemporaryValidity)
	msg := fmt.Sprintf("Temporary password, valid until %s", expiresAt.Format(clock.DisplayLayout))

	return model.PasswordRecord{
		Text:      text,
		ExpiresAt: expiresAt,
		Request:   model.Temporary{},
		Message:   msg,
	}, nil
}

// VerifyTemporary accepts a Temporary code whose embedded window lies
// within policy.TemporaryToleranceWindows of the receiver's current window.
func VerifyTemporary(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool) {
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.VerifyResult{}, false
	}
	cipher, err := ParseText(text)
	if err != nil {
		return model.VerifyResult{}, false
	}

	plaintext := keeloq.Decrypt(cipher, key)
	tag, _, field := unpack(plaintext, temporaryParamBits)
	if tag != tagTemporary {
		return model.VerifyResult{}, false
	}

	now := clk.Now()
	currentWindow := windowIndex(now, policy.TemporaryQuantum)
	windowBits := uint(windowBaseBits - temporaryParamBits)
	window := nearestCandidate(field, windowBits, currentWindow)

	if absInt64(currentWindow-window) > policy.TemporaryToleranceWindows {
		return model.VerifyResult{}, false
	}

	expiresAt := windowStart(window, policy.TemporaryQuantum).Add(policy.TemporaryValidity)
	if now.After(expiresAt) {
		return model.VerifyResult{}, false
	}

	return model.VerifyResult{
		Variant:   model.VariantTemporary,
		Request:   model.Temporary{},
		Remaining: expiresAt.Sub(now),
	}, true
}
