package service

import (
	"context"
	"time"

	"github.com/mzhn/levelup/pkg/entity"
)

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Duration    string `json:"duration" validate:"max=100"`
	Points      int    `json:"points" validate:"min=0"`
	IsDefault   bool   `json:"isDefault"`
}

type CreateSkillRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Level         int    `json:"level" validate:"min=0"`
	Experience    int    `json:"experience" validate:"min=0"`
	MaxExperience int    `json:"maxExperience" validate:"min=0"`
}

type CreateRuleRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	Type        string `json:"type" validate:"omitempty,rule_type"`
	IsDefault   bool   `json:"isDefault"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	Category    string    `json:"category" validate:"omitempty,oneof=work study break skills"`
	Description string    `json:"description" validate:"max=2000"`
}

type UserServiceI interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// Zeroes the progression fields and clears completion flags on every
	// owned task. Two independent store calls, best effort
	ResetProgress(ctx context.Context, id int64) (*entity.User, error)
}

type TasksServiceI interface {
	List(ctx context.Context, uid int64) ([]*entity.Task, error)
	// Validates the request, persists a new uncompleted task
	Create(ctx context.Context, uid int64, req *CreateTaskRequest) (*entity.Task, error)
	// Toggles completion and applies the progression rules: points and
	// experience awarded on completion (withdrawn on uncompletion), one
	// random skill advanced by half the task's points. Equal requested and
	// current state is a no-op
	SetCompletion(ctx context.Context, taskID, uid int64, isCompleted bool) (*entity.Task, error)
	Delete(ctx context.Context, taskID, uid int64) error
}

type SkillsServiceI interface {
	List(ctx context.Context, uid int64) ([]*entity.Skill, error)
	Create(ctx context.Context, uid int64, req *CreateSkillRequest) (*entity.Skill, error)
	// Replaces level and experience (nil keeps the current value), then the
	// store applies the skill level-up rule
	Update(ctx context.Context, skillID, uid int64, level, experience *int) (*entity.Skill, error)
	Delete(ctx context.Context, skillID, uid int64) error
}

type RulesServiceI interface {
	List(ctx context.Context, uid int64) ([]*entity.Rule, error)
	Create(ctx context.Context, uid int64, req *CreateRuleRequest) (*entity.Rule, error)
	Delete(ctx context.Context, ruleID, uid int64) error
}

type EventsServiceI interface {
	List(ctx context.Context, uid int64) ([]*entity.Event, error)
	Create(ctx context.Context, uid int64, req *CreateEventRequest) (*entity.Event, error)
	Delete(ctx context.Context, eventID, uid int64) error
}
