package memstore

import (
	"context"

	"github.com/mzhn/levelup/pkg/entity"
)

// Per-entity views over the shared Store, matching the repository
// interfaces so the backend is swappable with the Postgres repos.

type UsersRepo struct{ s *Store }
type TasksRepo struct{ s *Store }
type SkillsRepo struct{ s *Store }
type RulesRepo struct{ s *Store }
type EventsRepo struct{ s *Store }

func (s *Store) Users() *UsersRepo   { return &UsersRepo{s} }
func (s *Store) Tasks() *TasksRepo   { return &TasksRepo{s} }
func (s *Store) Skills() *SkillsRepo { return &SkillsRepo{s} }
func (s *Store) Rules() *RulesRepo   { return &RulesRepo{s} }
func (s *Store) Events() *EventsRepo { return &EventsRepo{s} }

func (r *UsersRepo) Create(ctx context.Context, user *entity.User) (int64, error) {
	return r.s.CreateUser(ctx, user)
}

func (r *UsersRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.s.GetUserByID(ctx, id)
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.s.GetUserByUsername(ctx, username)
}

func (r *UsersRepo) AddPoints(ctx context.Context, id int64, delta int) error {
	return r.s.AddUserPoints(ctx, id, delta)
}

func (r *UsersRepo) AddExperience(ctx context.Context, id int64, delta int) (*entity.User, error) {
	return r.s.AddUserExperience(ctx, id, delta)
}

func (r *UsersRepo) SetStreak(ctx context.Context, id int64, streak int) error {
	return r.s.SetUserStreak(ctx, id, streak)
}

func (r *UsersRepo) ResetProgress(ctx context.Context, id int64) (*entity.User, error) {
	return r.s.ResetUserProgress(ctx, id)
}

func (r *TasksRepo) Create(ctx context.Context, task *entity.Task) (int64, error) {
	return r.s.CreateTask(ctx, task)
}

func (r *TasksRepo) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	return r.s.GetTaskByID(ctx, id)
}

func (r *TasksRepo) GetByUserID(ctx context.Context, uid int64) ([]*entity.Task, error) {
	return r.s.GetTasksByUserID(ctx, uid)
}

func (r *TasksRepo) SetCompletion(ctx context.Context, id int64, isCompleted bool) error {
	return r.s.SetTaskCompletion(ctx, id, isCompleted)
}

func (r *TasksRepo) ResetCompletions(ctx context.Context, uid int64) error {
	return r.s.ResetTaskCompletions(ctx, uid)
}

func (r *TasksRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteTask(ctx, id)
}

func (r *SkillsRepo) Create(ctx context.Context, skill *entity.Skill) (int64, error) {
	return r.s.CreateSkill(ctx, skill)
}

func (r *SkillsRepo) GetByID(ctx context.Context, id int64) (*entity.Skill, error) {
	return r.s.GetSkillByID(ctx, id)
}

func (r *SkillsRepo) GetByUserID(ctx context.Context, uid int64) ([]*entity.Skill, error) {
	return r.s.GetSkillsByUserID(ctx, uid)
}

func (r *SkillsRepo) UpdateLevel(ctx context.Context, id int64, level, experience int) (*entity.Skill, error) {
	return r.s.UpdateSkillLevel(ctx, id, level, experience)
}

func (r *SkillsRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteSkill(ctx, id)
}

func (r *RulesRepo) Create(ctx context.Context, rule *entity.Rule) (int64, error) {
	return r.s.CreateRule(ctx, rule)
}

func (r *RulesRepo) GetByID(ctx context.Context, id int64) (*entity.Rule, error) {
	return r.s.GetRuleByID(ctx, id)
}

func (r *RulesRepo) GetByUserID(ctx context.Context, uid int64) ([]*entity.Rule, error) {
	return r.s.GetRulesByUserID(ctx, uid)
}

func (r *RulesRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteRule(ctx, id)
}

func (r *EventsRepo) Create(ctx context.Context, event *entity.Event) (int64, error) {
	return r.s.CreateEvent(ctx, event)
}

func (r *EventsRepo) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	return r.s.GetEventByID(ctx, id)
}

func (r *EventsRepo) GetByUserID(ctx context.Context, uid int64) ([]*entity.Event, error) {
	return r.s.GetEventsByUserID(ctx, uid)
}

func (r *EventsRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteEvent(ctx, id)
}
