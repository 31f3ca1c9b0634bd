package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "hirelink/internal/errors"
	"hirelink/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id, Email: "a@b.com"}, nil)

	user, err := NewUserService(repo, nil).GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
	_, err = NewUserService(repo, nil).GetUser(context.Background(), missing)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ListByRole(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("ListByRole", mock.Anything, model.RoleEmployer).Return([]model.User{{Name: "Acme"}}, nil)

	users, err := NewUserService(repo, nil).ListByRole(context.Background(), model.RoleEmployer)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = NewUserService(repo, nil).ListByRole(context.Background(), model.Role("ADMIN"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}
