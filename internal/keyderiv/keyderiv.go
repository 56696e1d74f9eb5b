// Package keyderiv derives the 64-bit KeeLoq key used throughout the codec
// from the short decimal admin key a door installation is configured with.
package keyderiv

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

const (
	minLen = 4
	maxLen = 10
)

// ErrInvalidKey is returned when the admin key is not 4-10 decimal digits.
type ErrInvalidKey struct {
	AdminKey string
}

func (e ErrInvalidKey) Error() string {
	return "keyderiv: invalid admin key " + strconv.Quote(e.AdminKey)
}

var (
	cache sync.Map // string -> uint64
	group singleflight.Group
)

// Derive maps a 4-10 digit admin key string to a deterministic 64-bit
// KeeLoq key.
//
// The scheme, fixed forever once a door installation is live:
//
//  1. lo = the admin digits read as a decimal integer, truncated to the
//     low 32 bits.
//  2. rotated = the digit sequence rotated left by one position
//     (adminKey[1:] + adminKey[:1]).
//  3. hi = rotated read as a decimal integer, truncated to the low 32 bits.
//  4. key = hi<<32 | lo.
//
// Any change to a single digit of adminKey changes lo, rotated, or both,
// so distinct admin keys almost always derive distinct cipher keys. Derive
// is pure; it is cached per admin-key string behind a concurrent map and a
// singleflight group so that concurrent callers deriving the same key do
// the arithmetic once.
func Derive(adminKey string) (uint64, error) {
	if err := validate(adminKey); err != nil {
		return 0, err
	}

	if v, ok := cache.Load(adminKey); ok {
		return v.(uint64), nil
	}

	v, err, _ := group.Do(adminKey, func() (any, error) {
		key := derive(adminKey)
		cache.Store(adminKey, key)
		return key, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

func validate(adminKey string) error {
	if len(adminKey) < minLen || len(adminKey) > maxLen {
		return ErrInvalidKey{AdminKey: adminKey}
	}
	for _, r := range adminKey {
		if r < '0' || r > '9' {
			return ErrInvalidKey{AdminKey: adminKey}
		}
	}
	return nil
}

func derive(adminKey string) uint64 {
	lo, _ := strconv.ParseUint(adminKey, 10, 64)
	rotated := adminKey[1:] + adminKey[:1]
	hi, _ := strconv.ParseUint(rotated, 10, 64)
	return uint64(uint32(hi))<<32 | uint64(uint32(lo))
}
