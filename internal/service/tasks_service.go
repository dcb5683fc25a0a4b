package service

import (
	"context"
	"errors"
	"log"
	"math/rand"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
)

type TasksService struct {
	tasks  repository.TasksRepositoryI
	users  repository.UsersRepositoryI
	skills repository.SkillsRepositoryI
}

func NewTasksService(tasksRepo repository.TasksRepositoryI, usersRepo repository.UsersRepositoryI, skillsRepo repository.SkillsRepositoryI) *TasksService {
	if tasksRepo == nil || usersRepo == nil || skillsRepo == nil {
		log.Fatal("provided nil repo to tasksService")
	}
	return &TasksService{
		tasks:  tasksRepo,
		users:  usersRepo,
		skills: skillsRepo,
	}
}

func (ts *TasksService) List(ctx context.Context, uid int64) ([]*entity.Task, error) {
	tasks, err := ts.tasks.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return tasks, nil
}

func (ts *TasksService) Create(ctx context.Context, uid int64, req *CreateTaskRequest) (*entity.Task, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	id, err := ts.tasks.Create(ctx, &entity.Task{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		Points:      req.Points,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	task, err := ts.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return task, nil
}

func (ts *TasksService) SetCompletion(ctx context.Context, taskID, uid int64, isCompleted bool) (*entity.Task, error) {
	task, err := ts.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	if task.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	// Equal requested and current state: no transition, no award
	if task.IsCompleted == isCompleted {
		return task, nil
	}
	if err := ts.tasks.SetCompletion(ctx, taskID, isCompleted); err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	task.IsCompleted = isCompleted
	if isCompleted {
		if err := ts.award(ctx, uid, task.Points); err != nil {
			return nil, err
		}
	} else {
		if err := ts.withdraw(ctx, uid, task.Points); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// award grants the completion reward: task points into the points
// accumulator and experience, then half the points into one randomly
// chosen skill of the user.
func (ts *TasksService) award(ctx context.Context, uid int64, points int) error {
	if err := ts.users.AddPoints(ctx, uid, points); err != nil {
		return errors.New("users repository error: " + err.Error())
	}
	if _, err := ts.users.AddExperience(ctx, uid, points); err != nil {
		return errors.New("users repository error: " + err.Error())
	}
	skills, err := ts.skills.GetByUserID(ctx, uid)
	if err != nil {
		return errors.New("skills repository error: " + err.Error())
	}
	if len(skills) == 0 {
		return nil
	}
	skill := skills[rand.Intn(len(skills))]
	_, err = ts.skills.UpdateLevel(ctx, skill.ID, skill.Level, skill.Experience+points/2)
	if err != nil {
		return errors.New("skills repository error: " + err.Error())
	}
	return nil
}

// withdraw takes the reward back on uncompletion. Experience is clamped
// at 0 by the store; skills keep whatever they were given.
func (ts *TasksService) withdraw(ctx context.Context, uid int64, points int) error {
	if err := ts.users.AddPoints(ctx, uid, -points); err != nil {
		return errors.New("users repository error: " + err.Error())
	}
	if _, err := ts.users.AddExperience(ctx, uid, -points); err != nil {
		return errors.New("users repository error: " + err.Error())
	}
	return nil
}

func (ts *TasksService) Delete(ctx context.Context, taskID, uid int64) error {
	task, err := ts.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	if task.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ts.tasks.Delete(ctx, taskID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	return nil
}
