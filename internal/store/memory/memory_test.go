package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/model"
	"github.com/iuu6/NekoHouseV3-Visitor-Registration/internal/store"
)

func TestCreateAndGetRecord(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rec, err := s.CreateRecord(ctx, model.PersistedRecord{
		VisitorID:   42,
		InviterID:   7,
		Variant:     model.VariantLimited,
		EmittedText: "5000000001",
		StartTime:   time.Now(),
		EndTime:     time.Now().Add(time.Hour),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, rec.RecordID)
	assert.Equal(t, model.RecordPending, rec.Status)

	got, err := s.GetRecord(ctx, rec.RecordID)
	assert.NoError(t, err)
	assert.Equal(t, rec.EmittedText, got.EmittedText)
}

func TestGetRecordNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.GetRecord(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListRecordsFiltersByVisitorAndStatus(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	r1, err := s.CreateRecord(ctx, model.PersistedRecord{VisitorID: 1, InviterID: 9, Variant: model.VariantTemporary})
	assert.NoError(t, err)
	_, err = s.CreateRecord(ctx, model.PersistedRecord{VisitorID: 2, InviterID: 9, Variant: model.VariantTemporary})
	assert.NoError(t, err)

	_, err = s.UpdateRecordStatus(ctx, r1.RecordID, model.RecordAuth)
	assert.NoError(t, err)

	byVisitor, err := s.ListRecords(ctx, store.RecordFilter{VisitorID: 1})
	assert.NoError(t, err)
	assert.Len(t, byVisitor, 1)
	assert.Equal(t, model.RecordAuth, byVisitor[0].Status)

	byInviter, err := s.ListRecords(ctx, store.RecordFilter{InviterID: 9})
	assert.NoError(t, err)
	assert.Len(t, byInviter, 2)

	pending, err := s.ListRecords(ctx, store.RecordFilter{Status: model.RecordPending})
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestUpdateRecordStatusNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.UpdateRecordStatus(context.Background(), "nonexistent", model.RecordRevoked)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPurgeExpiredBeforeSkipsRevoked(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	now := time.Now()
	expired, err := s.CreateRecord(ctx, model.PersistedRecord{EndTime: now.Add(-time.Hour)})
	assert.NoError(t, err)
	_, err = s.CreateRecord(ctx, model.PersistedRecord{EndTime: now.Add(time.Hour)})
	assert.NoError(t, err)

	revoked, err := s.CreateRecord(ctx, model.PersistedRecord{EndTime: now.Add(-time.Hour)})
	assert.NoError(t, err)
	_, err = s.UpdateRecordStatus(ctx, revoked.RecordID, model.RecordRevoked)
	assert.NoError(t, err)

	removed, err := s.PurgeExpiredBefore(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = s.GetRecord(ctx, expired.RecordID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetRecord(ctx, revoked.RecordID)
	assert.NoError(t, err)
}
