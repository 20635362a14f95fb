package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/models"
)

type OfferingService struct {
	offerings    OfferingStore
	reservations ReservationStore
	users        UserStore
}

func NewOfferingService(offerings OfferingStore, reservations ReservationStore, users UserStore) *OfferingService {
	return &OfferingService{offerings: offerings, reservations: reservations, users: users}
}

// Create publishes a new offering. It starts unverified and closed to
// bookings; admin verification opens it.
func (s *OfferingService) Create(ctx context.Context, req *models.CreateOfferingRequest) (*models.CreateOfferingResponse, error) {
	mentor, err := s.users.GetByID(ctx, req.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	if mentor == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if req.Kind == models.OfferingClass {
		if req.EndsAt == nil {
			return nil, errors.New("class offerings require ends_at")
		}
		if !req.EndsAt.After(req.StartsAt) {
			return nil, errors.New("ends_at must be after starts_at")
		}
	}

	offering := &models.Offering{
		MentorID:        req.MentorID,
		Kind:            req.Kind,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		StartsAt:        req.StartsAt,
	}
	if req.Kind == models.OfferingClass {
		offering.EndsAt = req.EndsAt
	}

	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, fmt.Errorf("failed to create offering: %w", err)
	}

	return &models.CreateOfferingResponse{ID: offering.ID}, nil
}

func (s *OfferingService) Get(ctx context.Context, id string) (*models.Offering, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}
	if offering == nil {
		return nil, apperrors.ErrOfferingNotFound
	}
	return offering, nil
}

// GetDetail returns an offering together with its reservations.
func (s *OfferingService) GetDetail(ctx context.Context, id string) (*models.OfferingDetailResponse, error) {
	offering, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservations.GetByOfferingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	items := make([]models.ListReservationsResponseItem, len(reservations))
	for i, res := range reservations {
		items[i] = models.ListReservationsResponseItem{
			ID:            res.ID,
			OfferingID:    res.OfferingID,
			Code:          res.Code,
			PaymentStatus: res.PaymentStatus,
			TotalAmount:   res.TotalAmount,
			ExpiresAt:     res.ExpiresAt,
		}
	}

	return &models.OfferingDetailResponse{Offering: offering, Reservations: items}, nil
}

func (s *OfferingService) List(ctx context.Context) (models.ListOfferingsResponse, error) {
	offerings, err := s.offerings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}

	result := make(models.ListOfferingsResponse, len(offerings))
	for i, o := range offerings {
		result[i] = models.ListOfferingsResponseItem{
			ID:              o.ID,
			Kind:            o.Kind,
			Name:            o.Name,
			Price:           o.Price,
			MaxParticipants: o.MaxParticipants,
			IsAvailable:     o.IsAvailable,
			IsActive:        o.IsActive,
			IsVerified:      o.IsVerified,
			StartsAt:        o.StartsAt,
		}
	}

	return result, nil
}

// Verify approves an offering and opens it for bookings.
func (s *OfferingService) Verify(ctx context.Context, offeringID string) error {
	if err := s.offerings.SetVerification(ctx, offeringID, true, nil); err != nil {
		return mapOfferingErr(err)
	}
	return nil
}

// Reject marks an offering unverified with the admin's reason.
func (s *OfferingService) Reject(ctx context.Context, offeringID, reason string) error {
	if err := s.offerings.SetVerification(ctx, offeringID, false, &reason); err != nil {
		return mapOfferingErr(err)
	}
	return nil
}

func mapOfferingErr(err error) error {
	if isNoRows(err) {
		return apperrors.ErrOfferingNotFound
	}
	return fmt.Errorf("failed to update offering: %w", err)
}
