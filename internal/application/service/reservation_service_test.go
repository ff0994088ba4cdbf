package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/email"
)

func newReservationServiceForTest() (*ReservationService, *fakeReservationRepo, *fakeTableRepo) {
	reservationRepo := newFakeReservationRepo()
	tableRepo := newFakeTableRepo()
	svc := NewReservationService(
		reservationRepo,
		tableRepo,
		fakeTxManager{},
		email.NewEmailService(email.EmailConfig{}),
		"Test Bistro",
		60*time.Minute,
		120*time.Minute,
	)
	return svc, reservationRepo, tableRepo
}

func seedTable(t *testing.T, repo *fakeTableRepo, number, capacity int) *entity.Table {
	t.Helper()
	table := &entity.Table{Number: number, Capacity: capacity, Status: enum.TableStatusAvailable}
	require.NoError(t, repo.Create(context.Background(), table))
	return table
}

func TestCreateReservationPicksSmallestTable(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	seedTable(t, tableRepo, 1, 6)
	small := seedTable(t, tableRepo, 2, 2)

	reservation, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       2,
		ReservationTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotNil(t, reservation.TableID)
	assert.Equal(t, small.ID, *reservation.TableID)
	assert.Equal(t, enum.ReservationStatusConfirmed, reservation.Status)

	tbl, _ := tableRepo.GetByID(context.Background(), small.ID)
	assert.Equal(t, enum.TableStatusReserved, tbl.Status)
}

func TestCreateReservationNoTableLargeEnough(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	seedTable(t, tableRepo, 1, 4)

	_, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       8,
		ReservationTime: time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "large enough")
}

func TestCreateReservationNoTableFreeAtTime(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	seedTable(t, tableRepo, 1, 4)
	slot := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       4,
		ReservationTime: slot,
	})
	require.NoError(t, err)

	// Same slot, only table taken
	_, err = svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Grace",
		PartySize:       4,
		ReservationTime: slot.Add(30 * time.Minute),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "free at the requested time")
}

func TestCreateReservationOutsideConflictWindow(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	seedTable(t, tableRepo, 1, 4)
	slot := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       4,
		ReservationTime: slot,
	})
	require.NoError(t, err)

	// Three hours later the table has turned over
	later, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Grace",
		PartySize:       4,
		ReservationTime: slot.Add(3 * time.Hour),
	})
	require.NoError(t, err)
	assert.NotNil(t, later.TableID)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	seedTable(t, tableRepo, 1, 4)

	_, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       0,
		ReservationTime: time.Now().Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       2,
		ReservationTime: time.Now().Add(-time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestReservationLifecycle(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	table := seedTable(t, tableRepo, 1, 4)

	reservation, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       2,
		ReservationTime: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	tbl, _ := tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusReserved, tbl.Status)

	seated, err := svc.SeatReservation(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReservationStatusSeated, seated.Status)
	tbl, _ = tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusOccupied, tbl.Status)

	done, err := svc.CompleteReservation(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReservationStatusCompleted, done.Status)
	tbl, _ = tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusAvailable, tbl.Status)

	// Closed reservations stay closed
	_, err = svc.CancelReservation(context.Background(), reservation.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelReservationFreesSlot(t *testing.T) {
	svc, _, tableRepo := newReservationServiceForTest()
	table := seedTable(t, tableRepo, 1, 4)
	slot := time.Now().Add(24 * time.Hour)

	first, err := svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Ada",
		PartySize:       4,
		ReservationTime: slot,
	})
	require.NoError(t, err)

	_, err = svc.CancelReservation(context.Background(), first.ID)
	require.NoError(t, err)

	// Cancelling a confirmed booking hands the table back
	tbl, _ := tableRepo.GetByID(context.Background(), table.ID)
	assert.Equal(t, enum.TableStatusAvailable, tbl.Status)

	// Cancelled booking no longer blocks the slot
	_, err = svc.CreateReservation(context.Background(), &CreateReservationInput{
		GuestName:       "Grace",
		PartySize:       4,
		ReservationTime: slot,
	})
	require.NoError(t, err)
}
