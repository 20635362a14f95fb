package service

import (
	"context"
	"testing"
	"time"

	"mentormatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLifecycleService(store *memStore, pub *fakePublisher) *LifecycleService {
	var publisher Publisher
	if pub != nil {
		publisher = pub
	}
	svc := NewLifecycleService(store, store, reservationView{store}, publisher)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestRunExpirySweep_ExpiresAndReopens(t *testing.T) {
	store := newMemStore()
	pub := &fakePublisher{}
	svc := newTestLifecycleService(store, pub)

	// Full offering whose single pending reservation lapsed.
	offering := openOffering(store, models.OfferingClass, 1)
	store.offerings[offering.ID].IsAvailable = false
	user := store.addUser(models.RoleMentee)
	res := store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow.Add(-time.Minute),
	})

	err := svc.RunExpirySweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.PaymentExpired, store.reservations[res.ID].PaymentStatus)
	assert.True(t, store.offerings[offering.ID].IsAvailable)
	assert.Equal(t, 1, pub.countSubject(models.EventReservationExpired))
	assert.Equal(t, 1, pub.countSubject(models.EventOfferingReopened))
}

func TestRunExpirySweep_Idempotent(t *testing.T) {
	store := newMemStore()
	pub := &fakePublisher{}
	svc := newTestLifecycleService(store, pub)

	offering := openOffering(store, models.OfferingClass, 1)
	store.offerings[offering.ID].IsAvailable = false
	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow.Add(-time.Minute),
	})

	require.NoError(t, svc.RunExpirySweep(context.Background()))
	require.NoError(t, svc.RunExpirySweep(context.Background()))

	// Second run finds nothing and publishes nothing new.
	assert.Equal(t, 1, pub.countSubject(models.EventReservationExpired))
	assert.Equal(t, 1, pub.countSubject(models.EventOfferingReopened))
}

func TestRunExpirySweep_ApprovedNeverExpires(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 10)
	user := store.addUser(models.RoleMentee)
	res := store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentApproved,
		ExpiresAt:     testNow.Add(-time.Hour),
	})

	require.NoError(t, svc.RunExpirySweep(context.Background()))
	assert.Equal(t, models.PaymentApproved, store.reservations[res.ID].PaymentStatus)
}

func TestRunExpirySweep_RejectedPastDeadlineExpires(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 10)
	user := store.addUser(models.RoleMentee)
	res := store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentRejected,
		ExpiresAt:     testNow.Add(-time.Hour),
	})

	require.NoError(t, svc.RunExpirySweep(context.Background()))

	// Expiring a rejected reservation frees its code and its seat.
	assert.Equal(t, models.PaymentExpired, store.reservations[res.ID].PaymentStatus)
}

func TestRunExpirySweep_PastEndNotResurrected(t *testing.T) {
	store := newMemStore()
	pub := &fakePublisher{}
	svc := newTestLifecycleService(store, pub)

	offering := openOffering(store, models.OfferingSession, 1)
	o := store.offerings[offering.ID]
	o.IsAvailable = false
	o.StartsAt = testNow.Add(-24 * time.Hour)

	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow.Add(-time.Minute),
	})

	require.NoError(t, svc.RunExpirySweep(context.Background()))

	assert.False(t, store.offerings[offering.ID].IsAvailable)
	assert.Equal(t, 0, pub.countSubject(models.EventOfferingReopened))
	assert.Equal(t, 1, pub.countSubject(models.EventReservationExpired))
}

func TestRunStatusReconciliation_ActivatesRunningOffering(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 10)
	o := store.offerings[offering.ID]
	o.StartsAt = testNow.Add(-24 * time.Hour)
	ends := testNow.Add(24 * time.Hour)
	o.EndsAt = &ends

	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentApproved,
		ExpiresAt:     testNow.Add(time.Hour),
	})

	require.NoError(t, svc.RunStatusReconciliation(context.Background()))
	assert.True(t, store.offerings[offering.ID].IsActive)
}

func TestRunStatusReconciliation_NoApprovedMeansInactive(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 10)
	o := store.offerings[offering.ID]
	o.StartsAt = testNow.Add(-24 * time.Hour)
	ends := testNow.Add(24 * time.Hour)
	o.EndsAt = &ends
	o.IsActive = true

	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow.Add(time.Hour),
	})

	require.NoError(t, svc.RunStatusReconciliation(context.Background()))
	assert.False(t, store.offerings[offering.ID].IsActive)
}

func TestRunStatusReconciliation_ClosesEndedOffering(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 10)
	o := store.offerings[offering.ID]
	o.StartsAt = testNow.Add(-48 * time.Hour)
	ends := testNow.Add(-time.Hour)
	o.EndsAt = &ends
	o.IsActive = true
	o.IsAvailable = true

	require.NoError(t, svc.RunStatusReconciliation(context.Background()))

	assert.False(t, store.offerings[offering.ID].IsActive)
	assert.False(t, store.offerings[offering.ID].IsAvailable)
}

func TestRunStatusReconciliation_ClosesFullOffering(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	offering := openOffering(store, models.OfferingClass, 1)
	user := store.addUser(models.RoleMentee)
	store.addReservation(models.Reservation{
		OfferingID:    offering.ID,
		UserID:        user.ID,
		Code:          123,
		PaymentStatus: models.PaymentPending,
		ExpiresAt:     testNow.Add(time.Hour),
	})

	require.NoError(t, svc.RunStatusReconciliation(context.Background()))
	assert.False(t, store.offerings[offering.ID].IsAvailable)
}

func TestRunStatusReconciliation_NeverReopens(t *testing.T) {
	store := newMemStore()
	svc := newTestLifecycleService(store, nil)

	// Closed offering with free capacity. Only the sweeper may reopen.
	offering := openOffering(store, models.OfferingClass, 10)
	store.offerings[offering.ID].IsAvailable = false

	require.NoError(t, svc.RunStatusReconciliation(context.Background()))
	assert.False(t, store.offerings[offering.ID].IsAvailable)
}
