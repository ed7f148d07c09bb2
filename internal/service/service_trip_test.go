package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/travel-journal-sync/internal/logger"
	"github.com/MKhiriev/travel-journal-sync/internal/mock"
	"github.com/MKhiriev/travel-journal-sync/internal/store"
	"github.com/MKhiriev/travel-journal-sync/models"
)

var tripNow = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

func newTestTripService(t *testing.T, ctrl *gomock.Controller) (*tripService, *mock.MockTripRepository, *mock.MockSyncLogRepository) {
	t.Helper()

	trips := mock.NewMockTripRepository(ctrl)
	syncLog := mock.NewMockSyncLogRepository(ctrl)

	storages := &store.Storages{Trips: trips, SyncLog: syncLog}

	svc := NewTripService(storages, logger.Nop()).(*tripService)
	svc.now = func() time.Time { return tripNow }

	return svc, trips, syncLog
}

func TestTripService_Create_FillsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, syncLog := newTestTripService(t, ctrl)
	ctx := context.Background()

	trips.EXPECT().Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, trip models.Trip) error {
			assert.NotEmpty(t, trip.ID)
			assert.Equal(t, tripNow, trip.CreatedAt)
			assert.Equal(t, tripNow, trip.UpdatedAt)
			assert.Equal(t, models.SyncStatusPending, trip.SyncStatus)
			assert.False(t, trip.Deleted)
			return nil
		})
	syncLog.EXPECT().Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) error {
			assert.Equal(t, "trip", entry.EntityType)
			assert.Equal(t, models.SyncActionCreate, entry.Action)
			return nil
		})

	created, err := svc.Create(ctx, models.Trip{Title: "Norway"})

	require.NoError(t, err)
	assert.Equal(t, "Norway", created.Title)
	assert.NotEmpty(t, created.ID)
}

func TestTripService_Create_EmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestTripService(t, ctrl)

	_, err := svc.Create(context.Background(), models.Trip{Title: "   "})

	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestTripService_Create_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, _ := newTestTripService(t, ctrl)
	ctx := context.Background()

	trips.EXPECT().Save(ctx, gomock.Any()).Return(errors.New("database is locked"))

	_, err := svc.Create(ctx, models.Trip{Title: "Norway"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create trip")
}

func TestTripService_Create_LogFailureDoesNotFailWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, syncLog := newTestTripService(t, ctrl)
	ctx := context.Background()

	trips.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	syncLog.EXPECT().Append(ctx, gomock.Any()).Return(errors.New("sync_log table missing"))

	_, err := svc.Create(ctx, models.Trip{Title: "Norway"})

	assert.NoError(t, err)
}

func TestTripService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, syncLog := newTestTripService(t, ctrl)
	ctx := context.Background()
	title := "Iceland"

	trips.EXPECT().Update(ctx, "trip-1", models.TripUpdate{Title: &title}, tripNow).Return(nil)
	syncLog.EXPECT().Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) error {
			assert.Equal(t, models.SyncActionUpdate, entry.Action)
			assert.Equal(t, "trip-1", entry.EntityID)
			return nil
		})

	err := svc.Update(ctx, "trip-1", models.TripUpdate{Title: &title})

	assert.NoError(t, err)
}

func TestTripService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, _ := newTestTripService(t, ctrl)
	ctx := context.Background()
	title := "Iceland"

	trips.EXPECT().Update(ctx, "missing", gomock.Any(), tripNow).
		Return(store.ErrNotFound)

	err := svc.Update(ctx, "missing", models.TripUpdate{Title: &title})

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTripService_Delete_SoftDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, syncLog := newTestTripService(t, ctrl)
	ctx := context.Background()

	trips.EXPECT().MarkDeleted(ctx, "trip-1", tripNow).Return(nil)
	syncLog.EXPECT().Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) error {
			assert.Equal(t, models.SyncActionDelete, entry.Action)
			return nil
		})

	err := svc.Delete(ctx, "trip-1")

	assert.NoError(t, err)
}

func TestTripService_GetAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, trips, _ := newTestTripService(t, ctrl)
	ctx := context.Background()

	want := models.Trip{Record: models.Record{ID: "trip-1"}, Title: "Norway"}
	trips.EXPECT().FindByID(ctx, "trip-1").Return(want, nil)
	trips.EXPECT().FindAll(ctx).Return([]models.Trip{want}, nil)

	got, err := svc.Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
