// Package store defines the persistence contract for issued-password
// records. The codec and password packages never import it: a record is
// something a caller (the bot, an operator CLI) chooses to remember, not
// something Generate or Verify need to function.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// RecordFilter narrows ListRecords. Zero values are "don't filter on this".
type RecordFilter struct {
	VisitorID int64
	InviterID int64
	Status    model.RecordStatus
	Limit     int
}

// Store persists PersistedRecords issued through the bot. The
// "nekohouse issue" subcommand prints its code without recording it.
// RecordID is assigned by the implementation on Create, the same way the
// teacher's store assigns agent/task IDs.
type Store interface {
	CreateRecord(ctx context.Context, rec model.PersistedRecord) (model.PersistedRecord, error)
	GetRecord(ctx context.Context, recordID string) (*model.PersistedRecord, error)
	ListRecords(ctx context.Context, f RecordFilter) ([]model.PersistedRecord, error)
	UpdateRecordStatus(ctx context.Context, recordID string, status model.RecordStatus) (model.PersistedRecord, error)
	// PurgeExpiredBefore deletes Pending/Auth records whose EndTime is
	// before cutoff, returning the number removed. It is the bookkeeping
	// half of verification: the codec itself is stateless and never
	// expires anything.
	PurgeExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}
