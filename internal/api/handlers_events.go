package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/service"
	"github.com/mzhn/levelup/pkg/httputil"
)

func (s *Server) GetEvents(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get events error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	events, err := s.eventsService.List(ctx, uid)
	if err != nil {
		logger.Error("getting events list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting events list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, events)
	logger.Info("events provided")
}

func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create event error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateEventRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create event error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	event, err := s.eventsService.Create(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create event error: invalid event data")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid event data", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create event error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create event: user doesn't exists", nil)
		default:
			logger.Error("create event error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating event", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, event)
	logger.Info("event created", slog.Int64("event_id", event.ID))
}

func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("event deletion error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := GetIDFromPath(r)
	if err != nil {
		logger.Error("event deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid event id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.eventsService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEventNotFound):
			logger.Error("event deletion error: unexist event")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "event not found", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("event deletion error: event has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized", nil)
		default:
			logger.Error("event deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting event", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SuccessResponse{Success: true})
	logger.Info("event deleted", slog.Int64("event_id", id))
}
