package service

import (
	"context"
	"testing"
	"time"

	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOfferingService(store *memStore) *OfferingService {
	return NewOfferingService(store, reservationView{store}, userView{store})
}

func classRequest(mentorID string) *models.CreateOfferingRequest {
	starts := testNow.Add(7 * 24 * time.Hour)
	ends := starts.Add(28 * 24 * time.Hour)
	return &models.CreateOfferingRequest{
		MentorID:        mentorID,
		Kind:            models.OfferingClass,
		Name:            "Backend mentoring cohort",
		Price:           25000,
		MaxParticipants: 10,
		StartsAt:        starts,
		EndsAt:          &ends,
	}
}

func TestOfferingCreate_StartsUnverifiedAndClosed(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)
	mentor := store.addUser(models.RoleMentor)

	resp, err := svc.Create(context.Background(), classRequest(mentor.ID))
	require.NoError(t, err)

	saved := store.offerings[resp.ID]
	require.NotNil(t, saved)
	assert.False(t, saved.IsVerified)
	assert.False(t, saved.IsAvailable)
	assert.False(t, saved.IsActive)
}

func TestOfferingCreate_MentorNotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)

	_, err := svc.Create(context.Background(), classRequest("missing"))
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestOfferingCreate_ClassRequiresEndDate(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)
	mentor := store.addUser(models.RoleMentor)

	req := classRequest(mentor.ID)
	req.EndsAt = nil

	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestOfferingCreate_SessionIgnoresEndDate(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)
	mentor := store.addUser(models.RoleMentor)

	req := classRequest(mentor.ID)
	req.Kind = models.OfferingSession
	req.MaxParticipants = 1

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Sessions end at their start instant; ends_at is not stored.
	assert.Nil(t, store.offerings[resp.ID].EndsAt)
}

func TestOfferingVerify_OpensForBooking(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)
	mentor := store.addUser(models.RoleMentor)

	resp, err := svc.Create(context.Background(), classRequest(mentor.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Verify(context.Background(), resp.ID))

	saved := store.offerings[resp.ID]
	assert.True(t, saved.IsVerified)
	assert.True(t, saved.IsAvailable)
}

func TestOfferingReject_StoresReason(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)
	mentor := store.addUser(models.RoleMentor)

	resp, err := svc.Create(context.Background(), classRequest(mentor.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), resp.ID, "pricing unclear"))

	saved := store.offerings[resp.ID]
	assert.False(t, saved.IsVerified)
	assert.False(t, saved.IsAvailable)
	require.NotNil(t, saved.RejectReason)
	assert.Equal(t, "pricing unclear", *saved.RejectReason)
}

func TestOfferingList_OnlyVerified(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)

	openOffering(store, models.OfferingClass, 10)
	unverified := openOffering(store, models.OfferingSession, 1)
	store.offerings[unverified.ID].IsVerified = false

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestOfferingGetDetail_IncludesReservations(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)

	offering := openOffering(store, models.OfferingClass, 10)
	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow,
	})

	detail, err := svc.GetDetail(context.Background(), offering.ID)
	require.NoError(t, err)
	assert.Equal(t, offering.ID, detail.Offering.ID)
	require.Len(t, detail.Reservations, 1)
	assert.Equal(t, 123, detail.Reservations[0].Code)
}

func TestOfferingGet_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestOfferingService(store)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrOfferingNotFound)
}
