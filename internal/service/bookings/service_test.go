package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	bookingRepo "github.com/BatoulDev/babibeauty-booking/internal/infra/storage/booking"
	"github.com/BatoulDev/babibeauty-booking/internal/service/bookings/models"
	"github.com/BatoulDev/babibeauty-booking/pkg/ptr"
)

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	listed     []*domain.Booking
	listErr    error
	lastFilter domain.BookingsFilter
	statusSets map[int64]domain.BookingStatus
	deleted    []int64
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{
		bookings:   map[int64]*domain.Booking{},
		statusSets: map[int64]domain.BookingStatus{},
	}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	return r.listed, r.listErr
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.bookings[id].Status = status
	r.statusSets[id] = status
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         1,
		CustomerID: 42,
		ExpertID:   7,
		StartsAt:   time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
		EndsAt:     time.Date(2025, 11, 20, 10, 30, 0, 0, time.UTC),
		Status:     status,
		Price:      80,
	}
}

func TestGetByID(t *testing.T) {
	t.Run("owner sees own booking", func(t *testing.T) {
		svc := NewService(newFakeRepo(testBooking(domain.StatusPending)), nopLogger{})

		resp, err := svc.GetByID(context.Background(), 1, 42, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2025-11-20 10:00:00", resp.StartsAt)
		assert.Equal(t, "2025-11-20 10:30:00", resp.EndsAt)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(testBooking(domain.StatusPending)), nopLogger{})

		_, err := svc.GetByID(context.Background(), 1, 99, false)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		svc := NewService(newFakeRepo(testBooking(domain.StatusPending)), nopLogger{})

		_, err := svc.GetByID(context.Background(), 1, 99, true)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.GetByID(context.Background(), 404, 42, false)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("non-admin scoped to own bookings", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listed = []*domain.Booking{testBooking(domain.StatusPending)}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{UserID: 42})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)

		require.NotNil(t, repo.lastFilter.CustomerID)
		assert.Equal(t, int64(42), *repo.lastFilter.CustomerID)
	})

	t.Run("admin filter passed through", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, nopLogger{})

		date := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			UserID:   1,
			IsAdmin:  true,
			ExpertID: ptr.Ptr(int64(7)),
			Date:     &date,
			Status:   ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)

		assert.Nil(t, repo.lastFilter.CustomerID)
		require.NotNil(t, repo.lastFilter.ExpertID)
		assert.Equal(t, int64(7), *repo.lastFilter.ExpertID)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			UserID: 42,
			Status: ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty result is empty list", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{UserID: 42})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.listErr = errors.New("connection refused")
		svc := NewService(repo, nopLogger{})

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{UserID: 42})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPending))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.statusSets[1])
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusCancelled))
		svc := NewService(repo, nopLogger{})

		// Повторная отмена - успех без записи в репозиторий
		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
		require.NoError(t, err)
		assert.Empty(t, repo.statusSets)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusCompleted))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPending))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin cancels any booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusConfirmed))
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: 99, IsAdmin: true})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		err := svc.Cancel(context.Background(), 404, &models.CancelBookingRequest{UserID: 42})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestHardDelete(t *testing.T) {
	t.Run("admin deletes booking", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusCancelled))
		svc := NewService(repo, nopLogger{})

		err := svc.HardDelete(context.Background(), 1, &models.CancelBookingRequest{UserID: 99, IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.deleted)
	})

	t.Run("owner without admin rights denied", func(t *testing.T) {
		repo := newFakeRepo(testBooking(domain.StatusPending))
		svc := NewService(repo, nopLogger{})

		// Даже владелец не удаляет запись физически - только мягкая отмена
		err := svc.HardDelete(context.Background(), 1, &models.CancelBookingRequest{UserID: 42})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		err := svc.HardDelete(context.Background(), 404, &models.CancelBookingRequest{UserID: 99, IsAdmin: true})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
