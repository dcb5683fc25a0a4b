// Package memstore is an in-memory implementation of the repository
// interfaces. State lives for the process lifetime only. A single Store
// value is constructed in main and injected into the services; the mutex
// guards map internals against concurrent handlers, it does not make
// read-compute-write sequences across calls atomic.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/pkg/entity"
)

type Store struct {
	mu sync.Mutex

	users  map[int64]*entity.User
	tasks  map[int64]*entity.Task
	skills map[int64]*entity.Skill
	rules  map[int64]*entity.Rule
	events map[int64]*entity.Event

	userID  int64
	taskID  int64
	skillID int64
	ruleID  int64
	eventID int64
}

func New() *Store {
	return &Store{
		users:  make(map[int64]*entity.User),
		tasks:  make(map[int64]*entity.Task),
		skills: make(map[int64]*entity.Skill),
		rules:  make(map[int64]*entity.Rule),
		events: make(map[int64]*entity.Event),
	}
}

// User operations

func (s *Store) CreateUser(ctx context.Context, user *entity.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return 0, errorvalues.ErrUserExists
		}
	}
	s.userID++
	stored := *user
	stored.ID = s.userID
	stored.Level = 1
	stored.Experience = 0
	stored.Points = 0
	stored.Streak = 0
	s.users[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errorvalues.ErrUserNotFound
}

func (s *Store) AddUserPoints(ctx context.Context, id int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return errorvalues.ErrUserNotFound
	}
	user.Points += delta
	return nil
}

func (s *Store) AddUserExperience(ctx context.Context, id int64, delta int) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	user.Experience += delta
	// One level per update, even if more than one threshold was earned
	if required := user.Level * 100; user.Experience >= required {
		user.Level++
		user.Experience -= required
	}
	// Unmarking a task may drive experience negative
	if user.Experience < 0 {
		user.Experience = 0
	}
	copied := *user
	return &copied, nil
}

func (s *Store) SetUserStreak(ctx context.Context, id int64, streak int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return errorvalues.ErrUserNotFound
	}
	user.Streak = streak
	return nil
}

func (s *Store) ResetUserProgress(ctx context.Context, id int64) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	user.Level = 1
	user.Experience = 0
	user.Points = 0
	user.Streak = 0
	copied := *user
	return &copied, nil
}

// Task operations

func (s *Store) CreateTask(ctx context.Context, task *entity.Task) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[task.UserID]; !ok {
		return 0, errorvalues.ErrUserNotFound
	}
	s.taskID++
	stored := *task
	stored.ID = s.taskID
	stored.IsCompleted = false
	stored.CreatedAt = time.Now()
	s.tasks[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetTaskByID(ctx context.Context, id int64) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, errorvalues.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *Store) GetTasksByUserID(ctx context.Context, uid int64) ([]*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := make([]*entity.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == uid {
			copied := *t
			tasks = append(tasks, &copied)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *Store) SetTaskCompletion(ctx context.Context, id int64, isCompleted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return errorvalues.ErrTaskNotFound
	}
	task.IsCompleted = isCompleted
	return nil
}

func (s *Store) ResetTaskCompletions(ctx context.Context, uid int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.UserID == uid {
			t.IsCompleted = false
		}
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return errorvalues.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Skill operations

func (s *Store) CreateSkill(ctx context.Context, skill *entity.Skill) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[skill.UserID]; !ok {
		return 0, errorvalues.ErrUserNotFound
	}
	s.skillID++
	stored := *skill
	stored.ID = s.skillID
	s.skills[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetSkillByID(ctx context.Context, id int64) (*entity.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skill, ok := s.skills[id]
	if !ok {
		return nil, errorvalues.ErrSkillNotFound
	}
	copied := *skill
	return &copied, nil
}

func (s *Store) GetSkillsByUserID(ctx context.Context, uid int64) ([]*entity.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skills := make([]*entity.Skill, 0)
	for _, sk := range s.skills {
		if sk.UserID == uid {
			copied := *sk
			skills = append(skills, &copied)
		}
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	return skills, nil
}

func (s *Store) UpdateSkillLevel(ctx context.Context, id int64, level, experience int) (*entity.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	skill, ok := s.skills[id]
	if !ok {
		return nil, errorvalues.ErrSkillNotFound
	}
	skill.Level = level
	skill.Experience = experience
	// One level per update, threshold grows by 1.2x floored
	if skill.Experience >= skill.MaxExperience {
		skill.Level++
		skill.Experience -= skill.MaxExperience
		skill.MaxExperience = skill.MaxExperience * 12 / 10
	}
	copied := *skill
	return &copied, nil
}

func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.skills[id]; !ok {
		return errorvalues.ErrSkillNotFound
	}
	delete(s.skills, id)
	return nil
}

// Rule operations

func (s *Store) CreateRule(ctx context.Context, rule *entity.Rule) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[rule.UserID]; !ok {
		return 0, errorvalues.ErrUserNotFound
	}
	s.ruleID++
	stored := *rule
	stored.ID = s.ruleID
	s.rules[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetRuleByID(ctx context.Context, id int64) (*entity.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule, ok := s.rules[id]
	if !ok {
		return nil, errorvalues.ErrRuleNotFound
	}
	copied := *rule
	return &copied, nil
}

func (s *Store) GetRulesByUserID(ctx context.Context, uid int64) ([]*entity.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := make([]*entity.Rule, 0)
	for _, r := range s.rules {
		if r.UserID == uid {
			copied := *r
			rules = append(rules, &copied)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return errorvalues.ErrRuleNotFound
	}
	delete(s.rules, id)
	return nil
}

// Event operations

func (s *Store) CreateEvent(ctx context.Context, event *entity.Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[event.UserID]; !ok {
		return 0, errorvalues.ErrUserNotFound
	}
	s.eventID++
	stored := *event
	stored.ID = s.eventID
	s.events[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) GetEventByID(ctx context.Context, id int64) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, errorvalues.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (s *Store) GetEventsByUserID(ctx context.Context, uid int64) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]*entity.Event, 0)
	for _, e := range s.events {
		if e.UserID == uid {
			copied := *e
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return errorvalues.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}
