package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
)

type UserService struct {
	users repository.UsersRepositoryI
	tasks repository.TasksRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI, tasksRepo repository.TasksRepositoryI) *UserService {
	if usersRepo == nil || tasksRepo == nil {
		log.Fatal("provided nil repo to userService")
	}
	return &UserService{
		users: usersRepo,
		tasks: tasksRepo,
	}
}

func (us *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) ResetProgress(ctx context.Context, id int64) (*entity.User, error) {
	user, err := us.users.ResetProgress(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	// Separate call, no transaction binding it to the reset above
	if err := us.tasks.ResetCompletions(ctx, id); err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return user, nil
}
