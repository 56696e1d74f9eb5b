// Package model holds the data types shared across the password codec: the
// four request shapes, the value emitted by generation, and the record a
// collaborator may persist. Nothing here validates or encodes; that is
// codec's job. model only carries data.
package model

// Variant names the four request shapes, used as a tag wherever code needs
// to identify a shape without a type switch (diagnostics, persisted
// records, verify results).
type Variant string

const (
	VariantTemporary Variant = "temporary"
	VariantTimes     Variant = "times"
	VariantLimited   Variant = "limited"
	VariantPeriod    Variant = "period"
)

// Request is the sum type of the four authorization shapes a password can
// encode.
type Request interface {
	Variant() Variant
}

// Temporary requests a single-use code valid for a short fixed window, with
// no parameters.
type Temporary struct{}

func (Temporary) Variant() Variant { return VariantTemporary }

// Times requests a code usable N times within its validity window.
type Times struct {
	N int
}

func (Times) Variant() Variant { return VariantTimes }

// Limited requests a code valid for a fixed duration (Hours, Minutes) from
// its emission window. Minutes is always 0 or 30.
type Limited struct {
	Hours   int
	Minutes int
}

func (Limited) Variant() Variant { return VariantLimited }

// Period requests a code valid until the top of a specific local hour.
type Period struct {
	Year  int
	Month int
	Day   int
	Hour  int
}

func (Period) Variant() Variant { return VariantPeriod }
