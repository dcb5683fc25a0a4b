package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mzhn/levelup/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in store. Returns assigned id
	Create(ctx context.Context, user *entity.User) (int64, error)
	// Looks up user by id
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// Looks up user by username. Used by first-start seeding
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Adds delta (may be negative) to user's points accumulator
	AddPoints(ctx context.Context, id int64, delta int) error
	// Adds delta to user's experience, applying the single-step level-up
	// rule and clamping negative experience to 0. Returns updated user
	AddExperience(ctx context.Context, id int64, delta int) (*entity.User, error)
	// Sets consecutive-day streak counter
	SetStreak(ctx context.Context, id int64, streak int) error
	// Zeroes level/experience/points/streak back to initial values
	ResetProgress(ctx context.Context, id int64) (*entity.User, error)
}

type TasksRepositoryI interface {
	// Creates new task. In task only UserID, Title are necessary
	Create(ctx context.Context, task *entity.Task) (int64, error)
	// Searches task with given id
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	// Lists tasks owned by user with uid
	GetByUserID(ctx context.Context, uid int64) ([]*entity.Task, error)
	// Sets completion flag on task with id
	SetCompletion(ctx context.Context, id int64, isCompleted bool) error
	// Clears completion flags on every task owned by uid
	ResetCompletions(ctx context.Context, uid int64) error
	// Deletes task with id
	Delete(ctx context.Context, id int64) error
}

type SkillsRepositoryI interface {
	Create(ctx context.Context, skill *entity.Skill) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Skill, error)
	GetByUserID(ctx context.Context, uid int64) ([]*entity.Skill, error)
	// Replaces level and experience, then applies the single-step level-up
	// rule: threshold consumed, maxExperience scaled by 1.2 (floored).
	// Returns updated skill
	UpdateLevel(ctx context.Context, id int64, level, experience int) (*entity.Skill, error)
	Delete(ctx context.Context, id int64) error
}

type RulesRepositoryI interface {
	Create(ctx context.Context, rule *entity.Rule) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Rule, error)
	GetByUserID(ctx context.Context, uid int64) ([]*entity.Rule, error)
	Delete(ctx context.Context, id int64) error
}

type EventsRepositoryI interface {
	Create(ctx context.Context, event *entity.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetByUserID(ctx context.Context, uid int64) ([]*entity.Event, error)
	Delete(ctx context.Context, id int64) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
