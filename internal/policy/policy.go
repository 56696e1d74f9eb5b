// Package policy collects the named constants that govern every codec
// variant: quantum lengths, validity spans, verification tolerances, and
// legal parameter ranges. Nothing in this package has behavior; it exists
// so the magic numbers the codecs need live in exactly one place.
package policy

import (
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/clock"
)

const (
	// TemporaryQuantum is the time-window granularity for single-use codes.
	TemporaryQuantum = 4 * time.Second
	// TemporaryValidity is how long a Temporary code remains acceptable
	// after its emission window starts.
	TemporaryValidity = 10 * time.Minute
	// TemporaryToleranceWindows is the verifier's search radius, in windows,
	// around the receiver's current window: floor(Validity/Quantum).
	TemporaryToleranceWindows = int64(TemporaryValidity / TemporaryQuantum) // 150

	// TimesQuantum is the time-window granularity for count-limited codes.
	TimesQuantum = 20 * time.Minute
	// TimesValidity is how long a Times code remains acceptable.
	TimesValidity = 20 * time.Hour
	// TimesToleranceWindows is floor(Validity/Quantum).
	TimesToleranceWindows = int64(TimesValidity / TimesQuantum) // 60
	// TimesMin and TimesMax bound the requested use count n.
	TimesMin = 1
	TimesMax = 31

	// LimitedQuantum is the time-window granularity for duration-limited codes.
	LimitedQuantum = 30 * time.Minute
	// LimitedMaxHours and LimitedMinutesStep bound the (h, m) duration pair:
	// h in [0,127], m in {0,30}, (h,m) != (0,0).
	LimitedMaxHours    = 127
	LimitedMinutesStep = 30

	// PeriodQuantum is the time-window granularity for deadline-limited codes.
	PeriodQuantum = time.Hour
	// PeriodFieldBits is the width of the absolute-hour-since-reference
	// field; values wrap modulo 2^PeriodFieldBits.
	PeriodFieldBits = 10
	// PeriodMaxHoursAhead is the furthest a deadline may sit in the future
	// and still be representable: 2^PeriodFieldBits - 1 hours.
	PeriodMaxHoursAhead = (1 << PeriodFieldBits) - 1
)

// PeriodReference is the fixed epoch Period hour-windows are counted from:
// midnight, 2020-01-01, in the codec's local zone (UTC+8).
var PeriodReference = time.Date(2020, time.January, 1, 0, 0, 0, 0, clock.Location)
