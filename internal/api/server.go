package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mzhn/levelup/internal/service"
)

type Server struct {
	mx            *chi.Mux
	userService   service.UserServiceI
	tasksService  service.TasksServiceI
	skillsService service.SkillsServiceI
	rulesService  service.RulesServiceI
	eventsService service.EventsServiceI
	demoUserID    int64
}

type ServicesList struct {
	UserService   service.UserServiceI
	TasksService  service.TasksServiceI
	SkillsService service.SkillsServiceI
	RulesService  service.RulesServiceI
	EventsService service.EventsServiceI
}

func New(servicesOptions *ServicesList, demoUserID int64) *Server {
	return &Server{
		mx:            chi.NewMux(),
		userService:   servicesOptions.UserService,
		tasksService:  servicesOptions.TasksService,
		skillsService: servicesOptions.SkillsService,
		rulesService:  servicesOptions.RulesService,
		eventsService: servicesOptions.EventsService,
		demoUserID:    demoUserID,
	}
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Use(s.DemoUserMiddleware)
	s.mx.Route("/api", func(r chi.Router) {
		r.Get("/user", s.GetUser)
		r.Post("/user/reset", s.ResetProgress)

		r.Get("/tasks", s.GetTasks)
		r.Post("/tasks", s.CreateTask)
		r.Patch("/tasks/{id}/complete", s.CompleteTask)
		r.Delete("/tasks/{id}", s.DeleteTask)

		r.Get("/skills", s.GetSkills)
		r.Post("/skills", s.CreateSkill)
		r.Patch("/skills/{id}", s.UpdateSkill)
		r.Delete("/skills/{id}", s.DeleteSkill)

		r.Get("/rules", s.GetRules)
		r.Post("/rules", s.CreateRule)
		r.Delete("/rules/{id}", s.DeleteRule)

		r.Get("/events", s.GetEvents)
		r.Post("/events", s.CreateEvent)
		r.Delete("/events/{id}", s.DeleteEvent)
	})
}

func (s *Server) Run(addr string) error {
	s.registerRoutes()
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the configured mux, used by httptest
func (s *Server) Handler() http.Handler {
	s.registerRoutes()
	return s.mx
}
