package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
)

type EventsService struct {
	repo repository.EventsRepositoryI
}

func NewEventsService(eventsRepo repository.EventsRepositoryI) *EventsService {
	if eventsRepo == nil {
		log.Fatal("provided nil eventsRepo")
	}
	return &EventsService{
		repo: eventsRepo,
	}
}

func (es *EventsService) List(ctx context.Context, uid int64) ([]*entity.Event, error) {
	events, err := es.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return events, nil
}

func (es *EventsService) Create(ctx context.Context, uid int64, req *CreateEventRequest) (*entity.Event, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	event := entity.Event{
		UserID:      uid,
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
		Description: req.Description,
	}
	if event.Category == "" {
		event.Category = entity.CategoryWork
	}
	id, err := es.repo.Create(ctx, &event)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("events repository error: " + err.Error())
	}
	created, err := es.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("events repository error: " + err.Error())
	}
	return created, nil
}

func (es *EventsService) Delete(ctx context.Context, eventID, uid int64) error {
	event, err := es.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	if event.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = es.repo.Delete(ctx, eventID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEventNotFound) {
			return err
		}
		return errors.New("events repository error: " + err.Error())
	}
	return nil
}
