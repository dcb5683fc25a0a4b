package memstore_test

import (
	"context"
	"testing"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository/memstore"
	"github.com/mzhn/levelup/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithUser(t *testing.T) (*memstore.Store, int64) {
	t.Helper()
	store := memstore.New()
	uid, err := store.Users().Create(context.Background(), &entity.User{
		Username:     "test_user",
		PasswordHash: "test_password_hash",
	})
	require.NoError(t, err)
	return store, uid
}

func TestUserCounters(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	first, err := store.Users().Create(ctx, &entity.User{Username: "first"})
	require.NoError(t, err)
	second, err := store.Users().Create(ctx, &entity.User{Username: "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	_, err = store.Users().Create(ctx, &entity.User{Username: "first"})
	assert.ErrorIs(t, err, errorvalues.ErrUserExists)
}

func TestNewUserDefaults(t *testing.T) {
	store, uid := newStoreWithUser(t)
	user, err := store.Users().FindByID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Experience)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, 0, user.Streak)
}

func TestAddExperience(t *testing.T) {
	ctx := context.Background()
	t.Run("level up consumes threshold once", func(t *testing.T) {
		store, uid := newStoreWithUser(t)
		_, err := store.Users().AddExperience(ctx, uid, 50)
		require.NoError(t, err)
		user, err := store.Users().AddExperience(ctx, uid, 100)
		require.NoError(t, err)
		assert.Equal(t, 2, user.Level)
		assert.Equal(t, 50, user.Experience)
	})
	t.Run("single level even for a multi-threshold jump", func(t *testing.T) {
		store, uid := newStoreWithUser(t)
		user, err := store.Users().AddExperience(ctx, uid, 300)
		require.NoError(t, err)
		assert.Equal(t, 2, user.Level)
		assert.Equal(t, 200, user.Experience)
	})
	t.Run("negative result clamps to zero", func(t *testing.T) {
		store, uid := newStoreWithUser(t)
		_, err := store.Users().AddExperience(ctx, uid, 5)
		require.NoError(t, err)
		user, err := store.Users().AddExperience(ctx, uid, -30)
		require.NoError(t, err)
		assert.Equal(t, 1, user.Level)
		assert.Equal(t, 0, user.Experience)
	})
	t.Run("unknown user", func(t *testing.T) {
		store := memstore.New()
		_, err := store.Users().AddExperience(ctx, 42, 10)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}

func TestTaskOwnershipFiltering(t *testing.T) {
	ctx := context.Background()
	store, uid := newStoreWithUser(t)
	other, err := store.Users().Create(ctx, &entity.User{Username: "other"})
	require.NoError(t, err)

	for _, owner := range []int64{uid, other, uid} {
		_, err := store.Tasks().Create(ctx, &entity.Task{UserID: owner, Title: "test_task", Points: 10})
		require.NoError(t, err)
	}
	mine, err := store.Tasks().GetByUserID(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, task := range mine {
		assert.Equal(t, uid, task.UserID)
		assert.False(t, task.IsCompleted)
		assert.False(t, task.CreatedAt.IsZero())
	}
	// IDs stay monotonic within the process
	assert.Less(t, mine[0].ID, mine[1].ID)
}

func TestResetProgressAndCompletions(t *testing.T) {
	ctx := context.Background()
	store, uid := newStoreWithUser(t)
	firstTask, err := store.Tasks().Create(ctx, &entity.Task{UserID: uid, Title: "first", Points: 30})
	require.NoError(t, err)
	secondTask, err := store.Tasks().Create(ctx, &entity.Task{UserID: uid, Title: "second", Points: 20})
	require.NoError(t, err)
	require.NoError(t, store.Tasks().SetCompletion(ctx, firstTask, true))
	require.NoError(t, store.Tasks().SetCompletion(ctx, secondTask, true))
	_, err = store.Users().AddExperience(ctx, uid, 250)
	require.NoError(t, err)
	require.NoError(t, store.Users().AddPoints(ctx, uid, 400))
	require.NoError(t, store.Users().SetStreak(ctx, uid, 5))

	user, err := store.Users().ResetProgress(ctx, uid)
	require.NoError(t, err)
	require.NoError(t, store.Tasks().ResetCompletions(ctx, uid))

	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Experience)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, 0, user.Streak)
	tasks, err := store.Tasks().GetByUserID(ctx, uid)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.False(t, task.IsCompleted)
	}
}

func TestUpdateSkillLevel(t *testing.T) {
	ctx := context.Background()
	store, uid := newStoreWithUser(t)
	id, err := store.Skills().Create(ctx, &entity.Skill{
		UserID:        uid,
		Name:          "Focus",
		Level:         1,
		Experience:    90,
		MaxExperience: 100,
	})
	require.NoError(t, err)

	t.Run("level up scales threshold", func(t *testing.T) {
		skill, err := store.Skills().UpdateLevel(ctx, id, 1, 110)
		require.NoError(t, err)
		assert.Equal(t, 2, skill.Level)
		assert.Equal(t, 10, skill.Experience)
		assert.Equal(t, 120, skill.MaxExperience)
	})
	t.Run("below threshold replaces values", func(t *testing.T) {
		skill, err := store.Skills().UpdateLevel(ctx, id, 2, 40)
		require.NoError(t, err)
		assert.Equal(t, 2, skill.Level)
		assert.Equal(t, 40, skill.Experience)
		assert.Equal(t, 120, skill.MaxExperience)
	})
	t.Run("unknown skill", func(t *testing.T) {
		_, err := store.Skills().UpdateLevel(ctx, 42, 1, 10)
		assert.ErrorIs(t, err, errorvalues.ErrSkillNotFound)
	})
}

func TestRuleAndEventLifecycle(t *testing.T) {
	ctx := context.Background()
	store, uid := newStoreWithUser(t)

	ruleID, err := store.Rules().Create(ctx, &entity.Rule{UserID: uid, Description: "No Reels", Type: entity.RuleTypeAvoid})
	require.NoError(t, err)
	rules, err := store.Rules().GetByUserID(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
	require.NoError(t, store.Rules().Delete(ctx, ruleID))
	assert.ErrorIs(t, store.Rules().Delete(ctx, ruleID), errorvalues.ErrRuleNotFound)

	_, err = store.Events().Create(ctx, &entity.Event{UserID: uid, Title: "Study", Category: entity.CategoryStudy})
	require.NoError(t, err)
	events, err := store.Events().GetByUserID(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.ErrorIs(t, store.Events().Delete(ctx, 42), errorvalues.ErrEventNotFound)
}
