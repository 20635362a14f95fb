package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"mentormatch/internal/models"
)

// memStore is an in-memory implementation of the store interfaces.
// WithTx holds a single mutex for the whole callback, which gives the
// same serial order for capacity decisions that the row lock gives in
// production.
type memStore struct {
	mu           sync.Mutex
	offerings    map[string]*models.Offering
	reservations map[string]*models.Reservation
	users        map[string]*models.User
	seq          int
}

func newMemStore() *memStore {
	return &memStore{
		offerings:    make(map[string]*models.Offering),
		reservations: make(map[string]*models.Reservation),
		users:        make(map[string]*models.User),
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// seeding helpers

func (m *memStore) addUser(role string) *models.User {
	u := &models.User{
		ID:       m.nextID("user"),
		Email:    m.nextID("user") + "@example.com",
		Name:     "Test User",
		UserType: role,
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addOffering(o models.Offering) *models.Offering {
	if o.ID == "" {
		o.ID = m.nextID("offering")
	}
	m.offerings[o.ID] = &o
	return &o
}

func (m *memStore) addReservation(r models.Reservation) *models.Reservation {
	if r.ID == "" {
		r.ID = m.nextID("reservation")
	}
	r.CreatedAt = time.Now()
	m.reservations[r.ID] = &r
	return &r
}

// OfferingStore

func (m *memStore) Create(ctx context.Context, o *models.Offering) error {
	o.ID = m.nextID("offering")
	cp := *o
	m.offerings[o.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*models.Offering, error) {
	o, ok := m.offerings[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) GetForUpdate(ctx context.Context, id string) (*models.Offering, error) {
	return m.GetByID(ctx, id)
}

func (m *memStore) List(ctx context.Context) ([]models.Offering, error) {
	var out []models.Offering
	for _, o := range m.offerings {
		if o.IsVerified {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]models.Offering, error) {
	out := make([]models.Offering, 0, len(m.offerings))
	for _, o := range m.offerings {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SetAvailability(ctx context.Context, id string, available bool) error {
	o, ok := m.offerings[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.IsAvailable = available
	return nil
}

func (m *memStore) SetVerification(ctx context.Context, id string, verified bool, reason *string) error {
	o, ok := m.offerings[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.IsVerified = verified
	o.IsAvailable = verified
	o.RejectReason = reason
	return nil
}

func (m *memStore) UpdateFlags(ctx context.Context, id string, isActive, isAvailable bool) error {
	o, ok := m.offerings[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.IsActive = isActive
	o.IsAvailable = isAvailable
	return nil
}

// ReservationStore

func (m *memStore) CreateReservation(ctx context.Context, res *models.Reservation) error {
	res.ID = m.nextID("reservation")
	res.CreatedAt = time.Now()
	cp := *res
	m.reservations[res.ID] = &cp
	return nil
}

func (m *memStore) GetReservationByID(ctx context.Context, id string) (*models.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) GetLive(ctx context.Context, offeringID, userID string) (*models.Reservation, error) {
	for _, r := range m.reservations {
		if r.OfferingID == offeringID && r.UserID == userID && r.Live() {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) HasAny(ctx context.Context, offeringID, userID string) (bool, error) {
	for _, r := range m.reservations {
		if r.OfferingID == offeringID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountCommitted(ctx context.Context, offeringID string) (int, error) {
	count := 0
	for _, r := range m.reservations {
		if r.OfferingID == offeringID &&
			(r.PaymentStatus == models.PaymentPending || r.PaymentStatus == models.PaymentApproved) {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountApproved(ctx context.Context, offeringID string) (int, error) {
	count := 0
	for _, r := range m.reservations {
		if r.OfferingID == offeringID && r.PaymentStatus == models.PaymentApproved {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CodeInUse(ctx context.Context, code int) (bool, error) {
	for _, r := range m.reservations {
		if r.Code == code && r.Live() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) SetPaymentStatus(ctx context.Context, id, status string) error {
	r, ok := m.reservations[id]
	if !ok {
		return sql.ErrNoRows
	}
	r.PaymentStatus = status
	return nil
}

func (m *memStore) GetByUserID(ctx context.Context, userID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetByOfferingID(ctx context.Context, offeringID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.reservations {
		if r.OfferingID == offeringID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ExpireLapsed(ctx context.Context, now time.Time) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	touched := make(map[string]int)
	for _, r := range m.reservations {
		if r.ExpiresAt.Before(now) &&
			r.PaymentStatus != models.PaymentApproved && r.PaymentStatus != models.PaymentExpired {
			r.PaymentStatus = models.PaymentExpired
			touched[r.OfferingID]++
		}
	}
	return touched, nil
}

// UserStore

func (m *memStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) UpdateRole(ctx context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.UserType = role
	return nil
}

func (m *memStore) UpdateProfile(ctx context.Context, id string, skills, location, about *string) error {
	u, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	if skills != nil {
		u.Skills = skills
	}
	if location != nil {
		u.Location = location
	}
	if about != nil {
		u.About = about
	}
	return nil
}

// reservationView adapts memStore to ReservationStore where method
// names collide with OfferingStore.
type reservationView struct{ *memStore }

func (v reservationView) Create(ctx context.Context, res *models.Reservation) error {
	return v.CreateReservation(ctx, res)
}

func (v reservationView) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return v.GetReservationByID(ctx, id)
}

// userView adapts memStore to UserStore.
type userView struct{ *memStore }

func (v userView) GetByID(ctx context.Context, id string) (*models.User, error) {
	return v.GetUserByID(ctx, id)
}

// fakePublisher records every published event.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	subject string
	data    interface{}
}

func (p *fakePublisher) Publish(subject string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{subject: subject, data: data})
	return nil
}

func (p *fakePublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.subject
	}
	return out
}

func (p *fakePublisher) countSubject(subject string) int {
	count := 0
	for _, s := range p.subjects() {
		if s == subject {
			count++
		}
	}
	return count
}
