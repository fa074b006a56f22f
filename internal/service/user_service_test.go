package service

import (
	"context"
	"testing"

	"book_manager/internal/model"
	"book_manager/internal/repository"
	"book_manager/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	var gotReq model.UpdateUserRequest
	repo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id int, req model.UpdateUserRequest) (int64, error) {
			gotReq = req
			return 1, nil
		},
	}
	svc := NewUserService(repo)

	err := svc.UpdateUser(context.Background(), 1, model.UpdateUserRequest{Password: "newpassword"})

	require.NoError(t, err)
	assert.NotEqual(t, "newpassword", gotReq.Password)
	assert.True(t, utils.CheckPasswordHash("newpassword", gotReq.Password))
}

func TestUserService_UpdateUser_NoFields(t *testing.T) {
	repo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id int, req model.UpdateUserRequest) (int64, error) {
			return 0, repository.ErrNoUpdateFields
		},
	}
	svc := NewUserService(repo)

	err := svc.UpdateUser(context.Background(), 1, model.UpdateUserRequest{})

	assert.ErrorIs(t, err, repository.ErrNoUpdateFields)
}

func TestUserService_UpdateUser_NothingAffected(t *testing.T) {
	repo := &fakeUserRepo{
		updateFn: func(ctx context.Context, id int, req model.UpdateUserRequest) (int64, error) {
			return 0, nil
		},
	}
	svc := NewUserService(repo)

	err := svc.UpdateUser(context.Background(), 99, model.UpdateUserRequest{Name: "Bo"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_DeleteUser_NothingDeleted(t *testing.T) {
	repo := &fakeUserRepo{
		deleteFn: func(ctx context.Context, id int) (int64, error) {
			return 0, nil
		},
	}
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	repo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id int) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.GetUser(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
