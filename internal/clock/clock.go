// Package clock abstracts "now" in the fixed regional offset (UTC+8) the
// door controller assumes, so the codec can be tested against deterministic
// instants instead of the system clock.
package clock

import "time"

// Location is the fixed regional offset every codec timestamp is computed
// in: UTC+8, with no daylight-saving adjustment.
var Location = time.FixedZone("UTC+8", 8*60*60)

// DisplayLayout is the human-readable format used for expiry messages.
const DisplayLayout = "2006-01-02 15:04:05"

// Clock abstracts the current instant.
type Clock interface {
	Now() time.Time
}

// System is the production Clock: the real system time, viewed in Location.
type System struct{}

func (System) Now() time.Time {
	return time.Now().In(Location)
}

// Fixed is a deterministic Clock for tests: it always returns the same
// instant (converted to Location) regardless of how many times Now is
// called, and regardless of wall-clock time passing between calls.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant.In(Location)
}

// NewFixed builds a Fixed clock from a local-time string in DisplayLayout,
// interpreted in Location. It panics on a malformed layout, since it is
// only ever called with literal strings in tests.
func NewFixed(s string) Fixed {
	t, err := time.ParseInLocation(DisplayLayout, s, Location)
	if err != nil {
		panic("clock: invalid fixed instant " + s + ": " + err.Error())
	}
	return Fixed{Instant: t}
}
