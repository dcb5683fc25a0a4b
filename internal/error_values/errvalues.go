package errorvalues

import "errors"

var (
	ErrUserExists    = errors.New("such user already exists")
	ErrUserNotFound  = errors.New("user doesn't exists")
	ErrTaskNotFound  = errors.New("task doesn't exists")
	ErrSkillNotFound = errors.New("skill doesn't exists")
	ErrRuleNotFound  = errors.New("rule doesn't exists")
	ErrEventNotFound = errors.New("event doesn't exists")
	ErrWrongOwner    = errors.New("entity has different owner")
	ErrValidation    = errors.New("validation error")
)
