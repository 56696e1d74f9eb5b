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

const periodParamBits = policy.PeriodFieldBits

func absHourSinceReference(t time.Time) int64 {
	return int64(t.Sub(policy.PeriodReference) / time.Hour)
}

// GeneratePeriod issues a code valid until the top of the named local hour.
// year/month/day/hour are always interpreted in clock.Location.
func GeneratePeriod(adminKey string, year, month, day, hour int, clk clock.Clock) (model.PasswordRecord, error) {
	deadline := time.Date(year, time.Month(month), day, hour, 0, 0, 0, clock.Location)
	now := clk.Now()
	if !deadline.After(now) {
		return model.PasswordRecord{}, model.ErrDeadlineInPast(
			fmt.Sprintf("deadline %s is not after now %s", deadline.Format(clock.DisplayLayout), now.Format(clock.DisplayLayout)))
	}

	deadlineHour := absHourSinceReference(deadline)
	nowHour := absHourSinceReference(now)
	if deadlineHour-nowHour > policy.PeriodMaxHoursAhead {
		return model.PasswordRecord{}, model.ErrDeadlineTooFar(
			fmt.Sprintf("deadline is more than %d hours ahead", policy.PeriodMaxHoursAhead))
	}

	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.PasswordRecord{}, model.ErrInvalidKey(err.Error())
	}

	paramField := uint32(deadlineHour) & (uint32(1)<<periodParamBits - 1)
	plaintext := pack(tagPeriod, paramField, periodParamBits, nowHour)
	cipher := keeloq.Encrypt(plaintext, key)
	text := Render(cipher)

	msg := fmt.Sprintf("Period password, valid until %s", deadline.Format(clock.DisplayLayout))

	return model.PasswordRecord{
		Text:      text,
		ExpiresAt: deadline,
		Request:   model.Period{Year: year, Month: month, Day: day, Hour: hour},
		Message:   msg,
	}, nil
}

// VerifyPeriod accepts a Period code while now is strictly before the
// deadline recovered from the code's 10-bit absolute-hour field.
func VerifyPeriod(text, adminKey string, clk clock.Clock) (model.VerifyResult, bool) {
	key, err := keyderiv.Derive(adminKey)
	if err != nil {
		return model.VerifyResult{}, false
	}
	cipher, err := ParseText(text)
	if err != nil {
		return model.VerifyResult{}, false
	}

	plaintext := keeloq.Decrypt(cipher, key)
	tag, param, _ := unpack(plaintext, periodParamBits)
	if tag != tagPeriod {
		return model.VerifyResult{}, false
	}

	now := clk.Now()
	nowHour := absHourSinceReference(now)
	deadlineHour := nearestCandidate(param, periodParamBits, nowHour)
	deadline := policy.PeriodReference.Add(time.Duration(deadlineHour) * time.Hour)

	if !now.Before(deadline) {
		return model.VerifyResult{}, false
	}

	return model.VerifyResult{
		Variant: model.VariantPeriod,
		Request: model.Period{
			Year:  deadline.Year(),
			Month: int(deadline.Month()),
			Day:   deadline.Day(),
			Hour:  deadline.Hour(),
		},
		Remaining: deadline.Sub(now),
	}, true
}

// ParsePeriodDeadline parses the "YYYY-MM-DD HH:MM:SS" string form of a
// Period deadline, ignoring minutes and seconds: the deadline is always the
// top of the named hour.
func ParsePeriodDeadline(s string) (year, month, day, hour int, err error) {
	t, err := time.ParseInLocation(clock.DisplayLayout, s, clock.Location)
	if err != nil {
		return 0, 0, 0, 0, model.ErrMalformed("period deadline must look like YYYY-MM-DD HH:MM:SS")
	}
	return t.Year(), int(t.Month()), t.Day(), t.Hour(), nil
}
