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

func (s *Server) GetRules(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get rules error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	rules, err := s.rulesService.List(ctx, uid)
	if err != nil {
		logger.Error("getting rules list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting rules list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, rules)
	logger.Info("rules provided")
}

func (s *Server) CreateRule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create rule error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req service.CreateRuleRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create rule error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	rule, err := s.rulesService.Create(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create rule error: invalid rule data")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid rule data", err)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create rule error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create rule: user doesn't exists", nil)
		default:
			logger.Error("create rule error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating rule", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, rule)
	logger.Info("rule created", slog.Int64("rule_id", rule.ID))
}

func (s *Server) DeleteRule(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("rule deletion error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := GetIDFromPath(r)
	if err != nil {
		logger.Error("rule deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid rule id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.rulesService.Delete(ctx, id, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRuleNotFound):
			logger.Error("rule deletion error: unexist rule")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "rule not found", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("rule deletion error: rule has different owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "not authorized", nil)
		default:
			logger.Error("rule deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting rule", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, httputil.SuccessResponse{Success: true})
	logger.Info("rule deleted", slog.Int64("rule_id", id))
}
