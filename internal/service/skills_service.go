package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/internal/repository"
	"github.com/mzhn/levelup/pkg/entity"
)

const defaultMaxExperience = 100

type SkillsService struct {
	repo repository.SkillsRepositoryI
}

func NewSkillsService(skillsRepo repository.SkillsRepositoryI) *SkillsService {
	if skillsRepo == nil {
		log.Fatal("provided nil skillsRepo")
	}
	return &SkillsService{
		repo: skillsRepo,
	}
}

func (ss *SkillsService) List(ctx context.Context, uid int64) ([]*entity.Skill, error) {
	skills, err := ss.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("skills repository error: " + err.Error())
	}
	return skills, nil
}

func (ss *SkillsService) Create(ctx context.Context, uid int64, req *CreateSkillRequest) (*entity.Skill, error) {
	if err := validateStruct(*req); err != nil {
		return nil, err
	}
	skill := entity.Skill{
		UserID:        uid,
		Name:          req.Name,
		Level:         req.Level,
		Experience:    req.Experience,
		MaxExperience: req.MaxExperience,
	}
	if skill.Level == 0 {
		skill.Level = 1
	}
	if skill.MaxExperience == 0 {
		skill.MaxExperience = defaultMaxExperience
	}
	id, err := ss.repo.Create(ctx, &skill)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("skills repository error: " + err.Error())
	}
	created, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("skills repository error: " + err.Error())
	}
	return created, nil
}

func (ss *SkillsService) Update(ctx context.Context, skillID, uid int64, level, experience *int) (*entity.Skill, error) {
	skill, err := ss.repo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSkillNotFound) {
			return nil, err
		}
		return nil, errors.New("skills repository error: " + err.Error())
	}
	if skill.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	// Absent fields keep the stored values
	newLevel := skill.Level
	if level != nil {
		newLevel = *level
	}
	newExperience := skill.Experience
	if experience != nil {
		newExperience = *experience
	}
	updated, err := ss.repo.UpdateLevel(ctx, skillID, newLevel, newExperience)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSkillNotFound) {
			return nil, err
		}
		return nil, errors.New("skills repository error: " + err.Error())
	}
	return updated, nil
}

func (ss *SkillsService) Delete(ctx context.Context, skillID, uid int64) error {
	skill, err := ss.repo.GetByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSkillNotFound) {
			return err
		}
		return errors.New("skills repository error: " + err.Error())
	}
	if skill.UserID != uid {
		return errorvalues.ErrWrongOwner
	}
	err = ss.repo.Delete(ctx, skillID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrSkillNotFound) {
			return err
		}
		return errors.New("skills repository error: " + err.Error())
	}
	return nil
}
