package codec

import (
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/policy"
)

// CurrentWindow reports the current time-window index for a variant,
// without touching an admin key or the cipher. It exists purely for
// diagnostics (e.g. an operator CLI printing "what window is the door
// controller on right now").
func CurrentWindow(variant model.Variant, clk clock.Clock) int64 {
	now := clk.Now()
	switch variant {
	case model.VariantTemporary:
		return windowIndex(now, policy.TemporaryQuantum)
	case model.VariantTimes:
		return windowIndex(now, policy.TimesQuantum)
	case model.VariantLimited:
		return windowIndex(now, policy.LimitedQuantum)
	case model.VariantPeriod:
		return absHourSinceReference(now)
	default:
		return 0
	}
}
