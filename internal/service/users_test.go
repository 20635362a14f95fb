package service

import (
	"context"
	"testing"

	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestSelectRole(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(userView{store})
	user := store.addUser(models.RoleMentee)

	err := svc.SelectRole(context.Background(), user.ID, models.RoleMentor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMentor, store.users[user.ID].UserType)
}

func TestSelectRole_UserNotFound(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(userView{store})

	err := svc.SelectRole(context.Background(), "missing", models.RoleMentor)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRegisterMentor(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(userView{store})
	user := store.addUser(models.RoleMentee)

	req := &models.RegisterMentorRequest{
		Skills:   strptr("Go, PostgreSQL"),
		Location: strptr("Almaty"),
		About:    strptr("Ten years in backend."),
	}

	err := svc.RegisterMentor(context.Background(), user.ID, req)
	require.NoError(t, err)

	saved := store.users[user.ID]
	assert.Equal(t, models.RolePendingMentor, saved.UserType)
	require.NotNil(t, saved.Skills)
	assert.Equal(t, "Go, PostgreSQL", *saved.Skills)
}

func TestRegisterMentor_UserNotFound(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(userView{store})

	err := svc.RegisterMentor(context.Background(), "missing", &models.RegisterMentorRequest{})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
