package service

import (
	"context"
	"errors"
	"log/slog"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoUsername = "demo"
	demoPassword = "demo123"
)

type seedTask struct {
	title       string
	description string
	duration    string
	points      int
}

var defaultTasks = []seedTask{
	{"Complete College Work", "Focus on assignments and studies", "3 Hours", 30},
	{"Learn Arabic, Quran", "Study and practice", "1 Hour", 15},
	{"Write one Hades Everyday", "Daily writing exercise", "", 10},
	{"Typing Speed to 50 WPM", "Practice typing", "30 Min", 10},
	{"Facebook Management Course", "Study social media management", "1 Hour", 15},
	{"Python", "Programming practice", "1 Hour", 20},
}

var defaultSkills = []string{"Intelligence", "Stamina", "Focus", "Discipline"}

type seedRule struct {
	description string
	ruleType    string
}

var defaultRules = []seedRule{
	{"Follow Time Table", entity.RuleTypeFollow},
	{"No Songs", entity.RuleTypeAvoid},
	{"No Animes", entity.RuleTypeAvoid},
	{"No Reels", entity.RuleTypeAvoid},
	{"Sunnah and Time Sleeping (with Blanket)", entity.RuleTypeFollow},
	{"No staying up unnecessarily", entity.RuleTypeAvoid},
	{"Reduce the frequency of bad habits", entity.RuleTypeFollow},
	{"No Junk or Fast Food", entity.RuleTypeAvoid},
	{"Chew food properly", entity.RuleTypeFollow},
	{"Less talk, with low voice pitch", entity.RuleTypeFollow},
}

type Seeder struct {
	users  repository.UsersRepositoryI
	tasks  repository.TasksRepositoryI
	skills repository.SkillsRepositoryI
	rules  repository.RulesRepositoryI
}

func NewSeeder(users repository.UsersRepositoryI, tasks repository.TasksRepositoryI, skills repository.SkillsRepositoryI, rules repository.RulesRepositoryI) *Seeder {
	return &Seeder{
		users:  users,
		tasks:  tasks,
		skills: skills,
		rules:  rules,
	}
}

// EnsureDemoUser creates the demo user with its default tasks, skills and
// rules on first start. Returns the demo user's id either way.
func (s *Seeder) EnsureDemoUser(ctx context.Context) (int64, error) {
	user, err := s.users.FindByUsername(ctx, DemoUsername)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, errorvalues.ErrUserNotFound) {
		return 0, errors.New("users repository error: " + err.Error())
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.New("hashing demo password error: " + err.Error())
	}
	uid, err := s.users.Create(ctx, &entity.User{
		Username:     DemoUsername,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		return 0, errors.New("creating demo user error: " + err.Error())
	}

	for _, t := range defaultTasks {
		_, err := s.tasks.Create(ctx, &entity.Task{
			UserID:      uid,
			Title:       t.title,
			Description: t.description,
			Duration:    t.duration,
			Points:      t.points,
			IsDefault:   true,
		})
		if err != nil {
			return 0, errors.New("seeding default task error: " + err.Error())
		}
	}
	for _, name := range defaultSkills {
		_, err := s.skills.Create(ctx, &entity.Skill{
			UserID:        uid,
			Name:          name,
			Level:         1,
			Experience:    0,
			MaxExperience: defaultMaxExperience,
		})
		if err != nil {
			return 0, errors.New("seeding default skill error: " + err.Error())
		}
	}
	for _, r := range defaultRules {
		_, err := s.rules.Create(ctx, &entity.Rule{
			UserID:      uid,
			Description: r.description,
			Type:        r.ruleType,
			IsDefault:   true,
		})
		if err != nil {
			return 0, errors.New("seeding default rule error: " + err.Error())
		}
	}
	slog.Info("seeded demo user with defaults", slog.Int64("uid", uid))
	return uid, nil
}
