package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/models"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// SelectRole records the role a user picked after first login.
func (s *UserService) SelectRole(ctx context.Context, userID, role string) error {
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if isNoRows(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// RegisterMentor upgrades a user to PendingMentor and stores the
// profile fields submitted with the application.
func (s *UserService) RegisterMentor(ctx context.Context, userID string, req *models.RegisterMentorRequest) error {
	if err := s.users.UpdateProfile(ctx, userID, req.Skills, req.Location, req.About); err != nil {
		if isNoRows(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.users.UpdateRole(ctx, userID, models.RolePendingMentor); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
