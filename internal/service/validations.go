package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/mzhn/levelup/internal/error_values"
	"github.com/mzhn/levelup/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("rule_type", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case entity.RuleTypeFollow, entity.RuleTypeAvoid:
				return true
			}
			return false
		})
	})
}

// validateStruct maps validator failures onto the ErrValidation sentinel so
// handlers can answer 400 with field details
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", errorvalues.ErrValidation, verrs.Error())
	}
	return errors.New("validation unexpected error: " + err.Error())
}
