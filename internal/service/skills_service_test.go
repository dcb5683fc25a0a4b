package service_test

import (
	"context"
	"testing"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository/memstore"
	"github.com/mzhn/levelup/internal/service"
	"github.com/mzhn/levelup/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(v int) *int { return &v }

func TestCreateSkill(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uid, err := store.Users().Create(ctx, &entity.User{Username: "test_user"})
	require.NoError(t, err)
	ss := service.NewSkillsService(store.Skills())

	t.Run("defaults filled", func(t *testing.T) {
		skill, err := ss.Create(ctx, uid, &service.CreateSkillRequest{Name: "Focus"})
		require.NoError(t, err)
		assert.Equal(t, 1, skill.Level)
		assert.Equal(t, 0, skill.Experience)
		assert.Equal(t, 100, skill.MaxExperience)
	})
	t.Run("missing name", func(t *testing.T) {
		_, err := ss.Create(ctx, uid, &service.CreateSkillRequest{Level: 1})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
}

func TestUpdateSkill(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uid, err := store.Users().Create(ctx, &entity.User{Username: "test_user"})
	require.NoError(t, err)
	ss := service.NewSkillsService(store.Skills())
	skillID, err := store.Skills().Create(ctx, &entity.Skill{
		UserID: uid, Name: "Focus", Level: 1, Experience: 90, MaxExperience: 100,
	})
	require.NoError(t, err)

	t.Run("absent level keeps current, level up applies", func(t *testing.T) {
		skill, err := ss.Update(ctx, skillID, uid, nil, intptr(110))
		require.NoError(t, err)
		assert.Equal(t, 2, skill.Level)
		assert.Equal(t, 10, skill.Experience)
		assert.Equal(t, 120, skill.MaxExperience)
	})
	t.Run("absent experience keeps current", func(t *testing.T) {
		skill, err := ss.Update(ctx, skillID, uid, intptr(5), nil)
		require.NoError(t, err)
		assert.Equal(t, 5, skill.Level)
		assert.Equal(t, 10, skill.Experience)
	})
	t.Run("unexist skill", func(t *testing.T) {
		_, err := ss.Update(ctx, 42, uid, nil, intptr(10))
		assert.ErrorIs(t, err, errorvalues.ErrSkillNotFound)
	})
	t.Run("wrong owner", func(t *testing.T) {
		other, err := store.Users().Create(ctx, &entity.User{Username: "other"})
		require.NoError(t, err)
		_, err = ss.Update(ctx, skillID, other, nil, intptr(10))
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
}

func TestDeleteSkill(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uid, err := store.Users().Create(ctx, &entity.User{Username: "test_user"})
	require.NoError(t, err)
	ss := service.NewSkillsService(store.Skills())
	skillID, err := store.Skills().Create(ctx, &entity.Skill{UserID: uid, Name: "Focus", Level: 1, MaxExperience: 100})
	require.NoError(t, err)

	require.NoError(t, ss.Delete(ctx, skillID, uid))
	assert.ErrorIs(t, ss.Delete(ctx, skillID, uid), errorvalues.ErrSkillNotFound)
}
