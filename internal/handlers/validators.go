package handlers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/chasseuragace/code-sub001/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the domain tags used in request binding to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("Gin validator engine is not go-playground/validator, custom tags unavailable")
			return
		}
		tags := map[string]validator.Func{
			"application_status": validateApplicationStatus,
			"application_action": validateApplicationAction,
			"agency_role":        validateAgencyRole,
			"interview_date":     layoutValidator(domain.InterviewDateLayout),
			"interview_time":     layoutValidator(domain.InterviewTimeLayout),
		}
		for tag, fn := range tags {
			if err := v.RegisterValidation(tag, fn); err != nil {
				slog.Error("Failed to register validator", slog.String("tag", tag), slog.String("error", err.Error()))
			}
		}
	})
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	return domain.ApplicationStatus(fl.Field().String()).IsValid()
}

func validateApplicationAction(fl validator.FieldLevel) bool {
	action, err := domain.ParseAction(fl.Field().String())
	return err == nil && action.IsTransition()
}

func validateAgencyRole(fl validator.FieldLevel) bool {
	role, err := domain.ParseRole(fl.Field().String())
	return err == nil && role.IsAgencyRole()
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}
