package api_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/mzhn/levelup/internal/api"
	"github.com/mzhn/levelup/internal/repository/memstore"
	"github.com/mzhn/levelup/internal/service"
	"github.com/mzhn/levelup/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type testEnv struct {
	handler http.Handler
	store   *memstore.Store
	uid     int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	uid, err := service.NewSeeder(store.Users(), store.Tasks(), store.Skills(), store.Rules()).
		EnsureDemoUser(context.Background())
	require.NoError(t, err)
	serv := api.New(&api.ServicesList{
		UserService:   service.NewUserService(store.Users(), store.Tasks()),
		TasksService:  service.NewTasksService(store.Tasks(), store.Users(), store.Skills()),
		SkillsService: service.NewSkillsService(store.Skills()),
		RulesService:  service.NewRulesService(store.Rules()),
		EventsService: service.NewEventsService(store.Events()),
	}, uid)
	return &testEnv{
		handler: serv.Handler(),
		store:   store,
		uid:     uid,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), dst))
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/user", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user api.UserResponse
	decodeBody(t, rec, &user)
	assert.Equal(t, service.DemoUsername, user.Username)
	assert.Equal(t, 1, user.Level)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestTaskRoutes(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", `{"title":"Read","duration":"30 Min","points":10}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var task entity.Task
		decodeBody(t, rec, &task)
		assert.Equal(t, "Read", task.Title)
		assert.NotZero(t, task.ID)

		rec = env.do(t, http.MethodGet, "/api/tasks", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var tasks []entity.Task
		decodeBody(t, rec, &tasks)
		// 6 seeded defaults plus the new one
		assert.Len(t, tasks, 7)
	})
	t.Run("create without title", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", `{"points":10}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(t, http.MethodGet, "/api/tasks", "")
		var tasks []entity.Task
		decodeBody(t, rec, &tasks)
		assert.Len(t, tasks, 6)
	})
	t.Run("complete applies progression", func(t *testing.T) {
		env := newTestEnv(t)
		tasks, err := env.store.Tasks().GetByUserID(context.Background(), env.uid)
		require.NoError(t, err)
		target := tasks[0] // "Complete College Work", 30 points

		rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", target.ID), `{"isCompleted":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var updated entity.Task
		decodeBody(t, rec, &updated)
		assert.True(t, updated.IsCompleted)

		rec = env.do(t, http.MethodGet, "/api/user", "")
		var user api.UserResponse
		decodeBody(t, rec, &user)
		assert.Equal(t, target.Points, user.Points)
		assert.Equal(t, target.Points, user.Experience)
	})
	t.Run("complete without boolean", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPatch, "/api/tasks/1/complete", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("complete unexist task", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPatch, "/api/tasks/999/complete", `{"isCompleted":true}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("complete foreign task", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		other, err := env.store.Users().Create(ctx, &entity.User{Username: "other"})
		require.NoError(t, err)
		taskID, err := env.store.Tasks().Create(ctx, &entity.Task{UserID: other, Title: "foreign", Points: 10})
		require.NoError(t, err)

		rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", taskID), `{"isCompleted":true}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		task, err := env.store.Tasks().GetByID(ctx, taskID)
		require.NoError(t, err)
		assert.False(t, task.IsCompleted)
	})
	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		tasks, err := env.store.Tasks().GetByUserID(context.Background(), env.uid)
		require.NoError(t, err)

		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", tasks[0].ID), "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), `"success":true`))

		rec = env.do(t, http.MethodDelete, "/api/tasks/999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("delete foreign task", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		other, err := env.store.Users().Create(ctx, &entity.User{Username: "other"})
		require.NoError(t, err)
		taskID, err := env.store.Tasks().Create(ctx, &entity.Task{UserID: other, Title: "foreign"})
		require.NoError(t, err)

		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		_, err = env.store.Tasks().GetByID(ctx, taskID)
		assert.NoError(t, err)
	})
}

func TestResetRoute(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tasks, err := env.store.Tasks().GetByUserID(ctx, env.uid)
	require.NoError(t, err)
	rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/complete", tasks[0].ID), `{"isCompleted":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/user/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user api.UserResponse
	decodeBody(t, rec, &user)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, 0, user.Experience)
	assert.Equal(t, 0, user.Points)
	assert.Equal(t, 0, user.Streak)

	tasks, err = env.store.Tasks().GetByUserID(ctx, env.uid)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.False(t, task.IsCompleted)
	}
}

func TestSkillRoutes(t *testing.T) {
	t.Run("list seeded", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/skills", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var skills []entity.Skill
		decodeBody(t, rec, &skills)
		assert.Len(t, skills, 4)
	})
	t.Run("create", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/skills", `{"name":"Patience"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var skill entity.Skill
		decodeBody(t, rec, &skill)
		assert.Equal(t, 1, skill.Level)
		assert.Equal(t, 100, skill.MaxExperience)
	})
	t.Run("create without name", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/skills", `{"level":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("update levels up", func(t *testing.T) {
		env := newTestEnv(t)
		skills, err := env.store.Skills().GetByUserID(context.Background(), env.uid)
		require.NoError(t, err)

		rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/skills/%d", skills[0].ID), `{"experience":110}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var skill entity.Skill
		decodeBody(t, rec, &skill)
		assert.Equal(t, 2, skill.Level)
		assert.Equal(t, 10, skill.Experience)
		assert.Equal(t, 120, skill.MaxExperience)
	})
	t.Run("delete", func(t *testing.T) {
		env := newTestEnv(t)
		skills, err := env.store.Skills().GetByUserID(context.Background(), env.uid)
		require.NoError(t, err)
		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/skills/%d", skills[0].ID), "")
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = env.do(t, http.MethodDelete, "/api/skills/999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRuleRoutes(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/rules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rules []entity.Rule
	decodeBody(t, rec, &rules)
	assert.Len(t, rules, 10)

	rec = env.do(t, http.MethodPost, "/api/rules", `{"description":"No doomscrolling","type":"avoid"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var rule entity.Rule
	decodeBody(t, rec, &rule)
	assert.Equal(t, entity.RuleTypeAvoid, rule.Type)

	rec = env.do(t, http.MethodPost, "/api/rules", `{"description":"bad type","type":"sometimes"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/rules/%d", rule.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEventRoutes(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/events",
		`{"title":"Deep work","startTime":"2026-09-01T09:00:00Z","endTime":"2026-09-01T11:00:00Z","category":"study"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var event entity.Event
	decodeBody(t, rec, &event)
	assert.Equal(t, entity.CategoryStudy, event.Category)

	rec = env.do(t, http.MethodPost, "/api/events", `{"title":"no times"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []entity.Event
	decodeBody(t, rec, &events)
	assert.Len(t, events, 1)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", event.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/events/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
