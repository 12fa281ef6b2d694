package update_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	bookingRepo "github.com/BatoulDev/babibeauty-booking/internal/infra/storage/booking"
	"github.com/BatoulDev/babibeauty-booking/internal/integrations/expertservice"
	"github.com/BatoulDev/babibeauty-booking/pkg/ptr"
)

// memoryRepo потокобезопасный репозиторий в памяти для тестов
type memoryRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, bookings: map[int64]*domain.Booking{}}
}

func (r *memoryRepo) add(b domain.Booking) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
		b.UpdatedAt = b.CreatedAt
	}
	stored := b
	r.bookings[stored.ID] = &stored
	return &stored
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memoryRepo) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	stored := *booking
	stored.UpdatedAt = time.Now()
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *memoryRepo) CountActiveAtSlot(_ context.Context, expertID int64, startsAt time.Time, excludeID *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.ExpertID == expertID && b.StartsAt.Equal(startsAt) && b.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepo) CountActiveByCustomerAtSlot(_ context.Context, customerID, expertID int64, startsAt time.Time, excludeID *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.CustomerID == customerID && b.ExpertID == expertID && b.StartsAt.Equal(startsAt) && b.IsActive() {
			count++
		}
	}
	return count, nil
}

type mutexTxManager struct {
	mu sync.Mutex
}

func (m *mutexTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeExpertClient struct {
	expert *expertservice.Expert
	err    error
}

func (f *fakeExpertClient) GetExpert(_ context.Context, _ int64) (*expertservice.Expert, error) {
	return f.expert, f.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slotAt(hour, min int) time.Time {
	return time.Date(2025, 11, 20, hour, min, 0, 0, time.UTC)
}

func newTestUseCase(repo *memoryRepo) *UseCase {
	return newTestUseCaseWithExpert(repo, &fakeExpertClient{
		expert: &expertservice.Expert{ID: 8, Name: "Maya", IsActive: true},
	})
}

func newTestUseCaseWithExpert(repo *memoryRepo, expertClient *fakeExpertClient) *UseCase {
	uc := NewUseCase(
		repo,
		expertClient,
		&mutexTxManager{},
		domain.DefaultSchedule(),
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC)}
	return uc
}

func pendingBooking(repo *memoryRepo) *domain.Booking {
	return repo.add(domain.Booking{
		CustomerID: 42,
		ExpertID:   7,
		StartsAt:   slotAt(10, 0),
		EndsAt:     slotAt(10, 30),
		Status:     domain.StatusPending,
		Price:      80,
	})
}

func TestExecute_StatusOnlyUpdate(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		Status:    ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	// Остальные поля неизменны
	assert.Equal(t, booking.StartsAt, resp.StartsAt)
	assert.Equal(t, booking.EndsAt, resp.EndsAt)
	assert.Equal(t, booking.Price, resp.Price)
}

func TestExecute_StrangerDenied(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	// Чужое бронирование без прав администратора не меняется
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    99,
		Status:    ptr.Ptr("cancelled"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	stored, getErr := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestExecute_AdminUpdatesAnyBooking(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    99,
		IsAdmin:   true,
		Status:    ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{name: "pending skips to completed", from: domain.StatusPending, to: "completed"},
		{name: "completed cannot be cancelled", from: domain.StatusCompleted, to: "cancelled"},
		{name: "cancelled cannot be revived", from: domain.StatusCancelled, to: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			booking := repo.add(domain.Booking{
				CustomerID: 42, ExpertID: 7,
				StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30),
				Status: tt.from, Price: 80,
			})
			uc := newTestUseCase(repo)

			_, err := uc.Execute(context.Background(), &Request{
				BookingID: booking.ID,
				UserID:    42,
				Status:    ptr.Ptr(tt.to),
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_SameStatusIsNoOp(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		Status:    ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestExecute_UnknownStatus(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		Status:    ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MoveDerivesEndsAt(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		StartsAt:  ptr.Ptr(slotAt(15, 30)),
	})

	require.NoError(t, err)
	assert.Equal(t, slotAt(15, 30), resp.StartsAt)
	assert.Equal(t, slotAt(16, 0), resp.EndsAt)
}

func TestExecute_SameSlotAfterNormalizationIsNotAMove(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	// Слот занят до вместимости, включая самого клиента
	repo.add(domain.Booking{CustomerID: 2, ExpertID: 7, StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30), Status: domain.StatusPending})
	repo.add(domain.Booking{CustomerID: 3, ExpertID: 7, StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30), Status: domain.StatusConfirmed})
	uc := newTestUseCase(repo)

	// startsAt отличается только секундами: после нормализации это тот же
	// слот, перенос не выполняется и проверка вместимости не срабатывает
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		StartsAt:  ptr.Ptr(slotAt(10, 0).Add(5 * time.Second)),
	})

	require.NoError(t, err)
	assert.Equal(t, slotAt(10, 0), resp.StartsAt)
}

func TestExecute_ExpertMoveChecksTargetCalendar(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	// У нового эксперта на это время два активных бронирования
	repo.add(domain.Booking{CustomerID: 2, ExpertID: 8, StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30), Status: domain.StatusPending})
	repo.add(domain.Booking{CustomerID: 3, ExpertID: 8, StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30), Status: domain.StatusConfirmed})
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		ExpertID:  ptr.Ptr(int64(8)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.ExpertID)

	// Третье место занято переносом, четвёртого нет
	occupied, err := repo.CountActiveAtSlot(context.Background(), 8, slotAt(10, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, occupied)
}

func TestExecute_MoveToFullSlot(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	for customerID := int64(2); customerID <= 4; customerID++ {
		repo.add(domain.Booking{CustomerID: customerID, ExpertID: 7, StartsAt: slotAt(12, 0), EndsAt: slotAt(12, 30), Status: domain.StatusPending})
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		StartsAt:  ptr.Ptr(slotAt(12, 0)),
	})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_MoveToDuplicateSlot(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	// У клиента уже есть активное бронирование на целевой слот
	repo.add(domain.Booking{CustomerID: 42, ExpertID: 7, StartsAt: slotAt(13, 0), EndsAt: slotAt(13, 30), Status: domain.StatusConfirmed})
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		StartsAt:  ptr.Ptr(slotAt(13, 0)),
	})
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_MoveInvalidSlots(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	tests := []struct {
		name     string
		startsAt time.Time
	}{
		{name: "off-grid", startsAt: slotAt(10, 15)},
		{name: "at closing", startsAt: slotAt(19, 0)},
		{name: "in the past", startsAt: time.Date(2025, 11, 19, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				BookingID: booking.ID,
				UserID:    42,
				StartsAt:  ptr.Ptr(tt.startsAt),
			})
			assert.ErrorIs(t, err, ErrInvalidSlot)
		})
	}
}

func TestExecute_MoveTerminalBooking(t *testing.T) {
	repo := newMemoryRepo()
	booking := repo.add(domain.Booking{
		CustomerID: 42, ExpertID: 7,
		StartsAt: slotAt(10, 0), EndsAt: slotAt(10, 30),
		Status: domain.StatusCompleted, Price: 80,
	})
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		StartsAt:  ptr.Ptr(slotAt(15, 0)),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_MoveToMissingExpert(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCaseWithExpert(repo, &fakeExpertClient{err: expertservice.ErrExpertNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		ExpertID:  ptr.Ptr(int64(404)),
	})
	assert.ErrorIs(t, err, ErrExpertNotFound)
}

func TestExecute_MoveToInactiveExpert(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCaseWithExpert(repo, &fakeExpertClient{
		expert: &expertservice.Expert{ID: 8, Name: "Maya", IsActive: false},
	})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		ExpertID:  ptr.Ptr(int64(8)),
	})
	assert.ErrorIs(t, err, ErrExpertInactive)
}

func TestExecute_PriceUpdate(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: booking.ID,
		UserID:    42,
		Price:     ptr.Ptr(95.5),
	})

	require.NoError(t, err)
	assert.Equal(t, 95.5, resp.Price)
}

func TestExecute_Validation(t *testing.T) {
	repo := newMemoryRepo()
	booking := pendingBooking(repo)
	uc := newTestUseCase(repo)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero booking id", req: &Request{UserID: 42, Status: ptr.Ptr("confirmed")}},
		{name: "zero user id", req: &Request{BookingID: booking.ID, Status: ptr.Ptr("confirmed")}},
		{name: "no fields to update", req: &Request{BookingID: booking.ID, UserID: 42}},
		{name: "negative price", req: &Request{BookingID: booking.ID, UserID: 42, Price: ptr.Ptr(-5.0)}},
		{name: "zero expert", req: &Request{BookingID: booking.ID, UserID: 42, ExpertID: ptr.Ptr(int64(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(newMemoryRepo())

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 999,
		UserID:    42,
		Status:    ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
