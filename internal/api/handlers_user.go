package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/pkg/entity"
	"github.com/mzhn/levelup/pkg/httputil"
)

// UserResponse is the user wire shape. The stored password hash never
// leaves the server.
type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Points     int    `json:"points"`
	Streak     int    `json:"streak"`
}

func newUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Level:      user.Level,
		Experience: user.Experience,
		Points:     user.Points,
		Streak:     user.Streak,
	}
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get user error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("get user error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("get user error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting user", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, newUserResponse(user))
	logger.Info("user provided")
}

func (s *Server) ResetProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("reset progress error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.ResetProgress(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("reset progress error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user not found", nil)
			return
		}
		logger.Error("reset progress error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while resetting progress", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, newUserResponse(user))
	logger.Info("user progress reset")
}
