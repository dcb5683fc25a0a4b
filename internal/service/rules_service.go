package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
)

type RulesService struct {
	repo repository.RulesRepositoryI
}

func NewRulesService(rulesRepo repository.RulesRepositoryI) *RulesService {
	if rulesRepo == nil {
		log.Fatal("provided nil rulesRepo")
	}
	return &RulesService{
		repo: rulesRepo,
	}
}

func (rs *RulesService) List(ctx context.Context, uid int64) ([]*entity.Rule, error) {
	rules, err := rs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("rules repository error: " + err.Error())
	}
	return rules, nil
}

func (rs *RulesService) Create(ctx context.Context, uid int64, req *CreateRuleRequest) (*entity.Rule, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	rule := entity.Rule{
		UserID:      uid,
		Description: req.Description,
		Type:        req.Type,
		IsDefault:   req.IsDefault,
	}
	if rule.Type == "" {
		rule.Type = entity.RuleTypeFollow
	}
	id, err := rs.repo.Create(ctx, &rule)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("rules repository error: " + err.Error())
	}
	created, err := rs.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("rules repository error: " + err.Error())
	}
	return created, nil
}

func (rs *RulesService) Delete(ctx context.Context, ruleID, uid int64) error {
	rule, err := rs.repo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRuleNotFound) {
			return err
		}
		return errors.New("rules repository error: " + err.Error())
	}
	if rule.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = rs.repo.Delete(ctx, ruleID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRuleNotFound) {
			return err
		}
		return errors.New("rules repository error: " + err.Error())
	}
	return nil
}
