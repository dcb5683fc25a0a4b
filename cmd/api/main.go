// @title LevelUp API
// @description API for gamified habit/task tracker "LevelUp"
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"log"
	"time"

	"github.com/mzhn/levelup/internal/api"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/internal/repository/memstore"
	"github.com/mzhn/levelup/internal/service"
	"github.com/mzhn/levelup/pkg/cleanup"
	"github.com/mzhn/levelup/pkg/config"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()

	var (
		usersRepo  repository.UsersRepositoryI
		tasksRepo  repository.TasksRepositoryI
		skillsRepo repository.SkillsRepositoryI
		rulesRepo  repository.RulesRepositoryI
		eventsRepo repository.EventsRepositoryI
	)
	switch backend := cfg.GetStringDefault("STORAGE_BACKEND", "memory"); backend {
	case "postgres":
		dbCfg := repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		}
		usersRepo = repository.NewUsersRepo(&dbCfg)
		tasksRepo = repository.NewTasksRepo(&dbCfg)
		skillsRepo = repository.NewSkillsRepo(&dbCfg)
		rulesRepo = repository.NewRulesRepo(&dbCfg)
		eventsRepo = repository.NewEventsRepo(&dbCfg)
	case "memory":
		store := memstore.New()
		usersRepo = store.Users()
		tasksRepo = store.Tasks()
		skillsRepo = store.Skills()
		rulesRepo = store.Rules()
		eventsRepo = store.Events()
	default:
		log.Fatal("unknown STORAGE_BACKEND: " + backend)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	demoUserID, err := service.NewSeeder(usersRepo, tasksRepo, skillsRepo, rulesRepo).EnsureDemoUser(ctx)
	cancel()
	if err != nil {
		log.Fatal("seeding error: " + err.Error())
	}

	serv := api.New(&api.ServicesList{
		UserService:   service.NewUserService(usersRepo, tasksRepo),
		TasksService:  service.NewTasksService(tasksRepo, usersRepo, skillsRepo),
		SkillsService: service.NewSkillsService(skillsRepo),
		RulesService:  service.NewRulesService(rulesRepo),
		EventsService: service.NewEventsService(eventsRepo),
	}, demoUserID)
	err = serv.Run(cfg.GetStringDefault("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
