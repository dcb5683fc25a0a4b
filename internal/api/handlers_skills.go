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

// UpdateSkillRequest carries absolute values; absent fields keep the
// stored ones.
type UpdateSkillRequest struct {
	Level      *int `json:"level"`
	Experience *int `json:"experience"`
}

func (s *Server) GetSkills(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get skills error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	skills, err := s.skillsService.List(ctx, uid)
	if err != nil {
		logger.Error("getting skills list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting skills list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, skills)
	logger.Info("skills provided")
}

func (s *Server) CreateSkill(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create skill error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateSkillRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create skill error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	skill, err := s.skillsService.Create(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create skill error: invalid skill data")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid skill data", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create skill error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create skill: user doesn't exists", nil)
		default:
			logger.Error("create skill error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating skill", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, skill)
	logger.Info("skill created", slog.Int64("skill_id", skill.ID))
}

func (s *Server) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update skill error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := GetIDFromPath(r)
	if err != nil {
		logger.Error("update skill error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid skill id in path value", nil)
		return
	}
	var req UpdateSkillRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update skill error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	skill, err := s.skillsService.Update(ctx, id, uid, req.Level, req.Experience)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSkillNotFound):
			logger.Error("update skill error: unexist skill")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "skill not found", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update skill error: skill has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized", nil)
		default:
			logger.Error("update skill error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating skill", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, skill)
	logger.Info("skill updated", slog.Int64("skill_id", skill.ID))
}

func (s *Server) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("skill deletion error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := GetIDFromPath(r)
	if err != nil {
		logger.Error("skill deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid skill id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.skillsService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrSkillNotFound):
			logger.Error("skill deletion error: unexist skill")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "skill not found", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("skill deletion error: skill has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized", nil)
		default:
			logger.Error("skill deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting skill", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SuccessResponse{Success: true})
	logger.Info("skill deleted", slog.Int64("skill_id", id))
}
