// Package password is the single entry point external callers use: it
// dispatches a Request to the right codec variant for generation, and
// tries every variant in a fixed order for verification.
package password

import (
	"fmt"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/codec"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
)

// Generate dispatches req to its codec and returns the resulting password
// record, using clk as the source of "now".
func Generate(adminKey string, req model.Request, clk clock.Clock) (model.PasswordRecord, error) {
	switch r := req.(type) {
	case model.Temporary:
		return codec.GenerateTemporary(adminKey, clk)
	case model.Times:
		return codec.GenerateTimes(adminKey, r.N, clk)
	case model.Limited:
		return codec.GenerateLimited(adminKey, r.Hours, r.Minutes, clk)
	case model.Period:
		return codec.GeneratePeriod(adminKey, r.Year, r.Month, r.Day, r.Hour, clk)
	default:
		return model.PasswordRecord{}, model.ErrMalformed(fmt.Sprintf("unknown request type %T", req))
	}
}

// verifiers lists the fixed dispatch order verify tries: Temporary, Times,
// Limited, Period. The first one whose decrypted plaintext has a matching
// tag, in-range parameters, and a still-valid time window wins.
var verifiers = []func(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool){
	codec.VerifyTemporary,
	codec.VerifyTimes,
	codec.VerifyLimited,
	codec.VerifyPeriod,
}

// Verify is total: malformed input, a wrong admin key, and an
// expired-but-structurally-valid code are all reported the same way, by a
// false second return value, never an error.
func Verify(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool) {
	for _, v := range verifiers {
		if res, ok := v(text, adminKey, clk); ok {
			return res, true
		}
	}
	return model.VerifyResult{}, false
}

// RemainingTime is a convenience wrapper over Verify for callers that only
// want to know how much longer a code is good for.
func RemainingTime(text, adminKey string, clk clock.Clock) (time.Duration, bool) {
	res, ok := Verify(text, adminKey, clk)
	if !ok {
		return 0, false
	}
	return res.Remaining, true
}

// WindowIndices reports each variant's current time-window index, for
// diagnostics. It does not involve an admin key or encryption.
func WindowIndices(clk clock.Clock) map[model.Variant]int64 {
	return map[model.Variant]int64{
		model.VariantTemporary: codec.CurrentWindow(model.VariantTemporary, clk),
		model.VariantTimes:     codec.CurrentWindow(model.VariantTimes, clk),
		model.VariantLimited:   codec.CurrentWindow(model.VariantLimited, clk),
		model.VariantPeriod:    codec.CurrentWindow(model.VariantPeriod, clk),
	}
}
